package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/internal/models"
)

// TaskFilter narrows ListTasks. Nil fields match everything.
type TaskFilter struct {
	AssigneeID *int64
	Completed  *bool
}

// CreateTask validates and inserts a task, stamping its creation date.
func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	if err := models.Validate(t); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTaskRefs(tx, t); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return writeError(err, "insert task")
		}
		return nil
	})
}

// GetTask fetches a task with its type and assignee.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.WithContext(ctx).Preload("TaskType").Preload("Assignee").First(&t, id).Error
	if err != nil {
		return models.Task{}, lookupError(err, "task", id)
	}
	return t, nil
}

// ListTasks returns tasks ordered by name.
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	q := s.db.WithContext(ctx).Preload("TaskType").Order("name, id")
	if filter.AssigneeID != nil {
		q = q.Where("assignees_id = ?", *filter.AssigneeID)
	}
	if filter.Completed != nil {
		q = q.Where("is_completed = ?", *filter.Completed)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask overwrites an existing task. The creation date is never
// rewritten; t.CreatedDate is refreshed from the stored row.
func (s *Store) UpdateTask(ctx context.Context, t *models.Task) error {
	if err := models.Validate(t); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Task
		if err := tx.Select("id", "created_date").First(&current, t.ID).Error; err != nil {
			return lookupError(err, "task", t.ID)
		}
		if err := checkTaskRefs(tx, t); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return writeError(err, "update task")
		}
		t.CreatedDate = current.CreatedDate
		return nil
	})
}

// SetTaskCompleted flips the completion flag of a task.
func (s *Store) SetTaskCompleted(ctx context.Context, id int64, completed bool) error {
	res := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Update("is_completed", completed)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

func checkTaskRefs(tx *gorm.DB, t *models.Task) error {
	if err := checkWorker(tx, t.AssigneeID); err != nil {
		return err
	}
	if t.TaskTypeID == nil {
		return nil
	}
	ok, err := exists(tx, &models.TaskType{}, *t.TaskTypeID)
	if err != nil {
		return fmt.Errorf("get task type: %w", err)
	}
	if !ok {
		return fmt.Errorf("task type %d: %w", *t.TaskTypeID, ErrNotFound)
	}
	return nil
}
