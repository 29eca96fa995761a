package avatar

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"taskmanager/internal/models"
)

// UploadDir is the namespace uploaded avatars are stored under.
const UploadDir = "profile_images"

var invalidNameChars = regexp.MustCompile(`[^-\p{L}\p{N}_.]`)

// Media stores avatar files below a root directory. Names handed out and
// accepted by Media are slash separated and relative to Root.
type Media struct {
	Root string
}

// NewMedia returns a Media rooted at root.
func NewMedia(root string) *Media {
	return &Media{Root: root}
}

// Path resolves a stored name to a file path inside Root.
func (m *Media) Path(name string) string {
	clean := path.Clean("/" + name)
	return filepath.Join(m.Root, filepath.FromSlash(clean))
}

// URL is the public path the media handler serves name from.
func (m *Media) URL(name string) string {
	return "/media" + path.Clean("/"+name)
}

// SaveUpload stores r under UploadDir using a sanitized form of filename.
// When the name is taken a random suffix is added to the stem.
func (m *Media) SaveUpload(filename string, r io.Reader) (string, error) {
	base, err := validName(filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(m.Root, UploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := path.Join(UploadDir, base)
	for {
		f, err := os.OpenFile(m.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			name = path.Join(UploadDir, stem+"_"+uuid.NewString()[:7]+ext)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create avatar file: %w", err)
		}

		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write avatar file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close avatar file: %w", err)
		}
		return name, nil
	}
}

// Normalize fits the stored avatar name into the MaxSide box.
func (m *Media) Normalize(name string) (bool, error) {
	return Normalize(m.Path(name), MaxSide)
}

// EnsureDefault writes a plain placeholder for models.DefaultAvatar when
// the root does not have one yet.
func (m *Media) EnsureDefault() error {
	p := m.Path(models.DefaultAvatar)
	if _, err := os.Stat(p); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create media root: %w", err)
	}
	img := imaging.New(MaxSide, MaxSide, color.NRGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff})
	if err := imaging.Save(img, p); err != nil {
		return fmt.Errorf("write default avatar: %w", err)
	}
	return nil
}

func validName(filename string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(strings.TrimSpace(base), " ", "_")
	base = invalidNameChars.ReplaceAllString(base, "")
	if base == "" || base == "." || base == ".." {
		return "", fmt.Errorf("invalid avatar file name %q", filename)
	}
	ext := path.Ext(base)
	if strings.TrimSuffix(base, ext) == "" {
		base = uuid.NewString()[:8] + ext
	}
	return base, nil
}
