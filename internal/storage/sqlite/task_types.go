package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// CreateTaskType validates and inserts a task type.
func (s *Store) CreateTaskType(ctx context.Context, name models.TaskTypeName) (models.TaskType, error) {
	tt := models.TaskType{Name: name}
	if err := models.Validate(&tt); err != nil {
		return models.TaskType{}, err
	}
	if err := s.db.WithContext(ctx).Create(&tt).Error; err != nil {
		return models.TaskType{}, writeError(err, "insert task type")
	}
	return tt, nil
}

// GetTaskType fetches a single task type by id.
func (s *Store) GetTaskType(ctx context.Context, id int64) (models.TaskType, error) {
	var tt models.TaskType
	if err := s.db.WithContext(ctx).First(&tt, id).Error; err != nil {
		return models.TaskType{}, lookupError(err, "task type", id)
	}
	return tt, nil
}

// ListTaskTypes returns all task types ordered by name.
func (s *Store) ListTaskTypes(ctx context.Context) ([]models.TaskType, error) {
	var types []models.TaskType
	if err := s.db.WithContext(ctx).Order("name, id").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list task types: %w", err)
	}
	return types, nil
}

// DeleteTaskType removes a task type; tasks of that type keep existing
// without one.
func (s *Store) DeleteTaskType(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detached := tx.Model(&models.Task{}).Where("task_type_id = ?", id).Update("task_type_id", nil)
		if detached.Error != nil {
			return fmt.Errorf("detach tasks: %w", detached.Error)
		}

		res := tx.Delete(&models.TaskType{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete task type: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("task type %d: %w", id, ErrNotFound)
		}

		s.logger.Info("task type deleted", slog.Int64("id", id), slog.Int64("tasks_detached", detached.RowsAffected))
		return nil
	})
}
