package server

import (
	"os"
)

// mountMedia serves stored avatars below /media.
func (s *Server) mountMedia() {
	if s.media == nil || s.media.Root == "" {
		s.logger.Warn("media root not configured; avatars are not served")
		return
	}

	info, err := os.Stat(s.media.Root)
	if err != nil || !info.IsDir() {
		s.logger.Warn("media root missing", "path", s.media.Root, "error", err)
		return
	}

	s.engine.Static("/media", s.media.Root)
}
