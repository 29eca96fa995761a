package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/models"
	"taskmanager/internal/storage/sqlite"
)

type profileView struct {
	ID                      int64  `json:"id"`
	Avatar                  string `json:"avatar"`
	AvatarURL               string `json:"avatar_url"`
	Phone                   string `json:"phone"`
	MainProgrammingLanguage string `json:"main_programming_language"`
}

type workerDetail struct {
	models.Worker
	DisplayName   string        `json:"display_name"`
	URL           string        `json:"url"`
	PositionLabel string        `json:"position_label,omitempty"`
	Profile       *profileView  `json:"profile"`
	Tasks         []models.Task `json:"tasks"`
}

// handleWorkerDetail returns a worker with its profile and assigned tasks.
func (s *Server) handleWorkerDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	worker, err := s.store.GetWorker(ctx, id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	detail := workerDetail{
		Worker:      worker,
		DisplayName: worker.String(),
		URL:         worker.URL(),
		Tasks:       []models.Task{},
	}
	if worker.Position != nil {
		detail.PositionLabel = worker.Position.Name.Label()
	}

	profile, err := s.store.GetProfileByWorker(ctx, id)
	switch {
	case err == nil:
		detail.Profile = &profileView{
			ID:                      profile.ID,
			Avatar:                  profile.Avatar,
			Phone:                   profile.Phone,
			MainProgrammingLanguage: profile.MainProgrammingLanguage,
		}
		if s.media != nil {
			detail.Profile.AvatarURL = s.media.URL(profile.Avatar)
		}
	case !errors.Is(err, sqlite.ErrNotFound):
		s.respondError(c, err)
		return
	}

	tasks, err := s.store.ListTasks(ctx, sqlite.TaskFilter{AssigneeID: &id})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if tasks != nil {
		detail.Tasks = tasks
	}

	c.JSON(http.StatusOK, detail)
}
