package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/internal/models"
)

// CreateWorker validates and inserts a worker account.
func (s *Store) CreateWorker(ctx context.Context, w *models.Worker) error {
	if err := models.Validate(w); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Worker{}).Where("username = ?", w.Username).Count(&n).Error; err != nil {
			return fmt.Errorf("count workers: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("worker %q: %w", w.Username, ErrAlreadyExists)
		}
		if err := checkPosition(tx, w.PositionID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(w).Error; err != nil {
			return writeError(err, "insert worker")
		}
		return nil
	})
}

// GetWorker fetches a worker with its position.
func (s *Store) GetWorker(ctx context.Context, id int64) (models.Worker, error) {
	var w models.Worker
	if err := s.db.WithContext(ctx).Preload("Position").First(&w, id).Error; err != nil {
		return models.Worker{}, lookupError(err, "worker", id)
	}
	return w, nil
}

// GetWorkerByUsername fetches a worker by its unique username.
func (s *Store) GetWorkerByUsername(ctx context.Context, username string) (models.Worker, error) {
	var w models.Worker
	err := s.db.WithContext(ctx).Preload("Position").Where("username = ?", username).First(&w).Error
	if err != nil {
		return models.Worker{}, lookupError(err, "worker", username)
	}
	return w, nil
}

// ListWorkers returns all workers ordered by username.
func (s *Store) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	if err := s.db.WithContext(ctx).Preload("Position").Order("username, id").Find(&workers).Error; err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

// UpdateWorker overwrites every column of an existing worker.
func (s *Store) UpdateWorker(ctx context.Context, w *models.Worker) error {
	if err := models.Validate(w); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Worker{}, w.ID)
		if err != nil {
			return fmt.Errorf("get worker: %w", err)
		}
		if !ok {
			return fmt.Errorf("worker %d: %w", w.ID, ErrNotFound)
		}
		if err := checkPosition(tx, w.PositionID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(w).Error; err != nil {
			return writeError(err, "update worker")
		}
		return nil
	})
}

// DeleteWorker removes a worker together with its profile and every task
// assigned to it.
func (s *Store) DeleteWorker(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := tx.Where("assignees_id = ?", id).Delete(&models.Task{})
		if tasks.Error != nil {
			return fmt.Errorf("delete assigned tasks: %w", tasks.Error)
		}

		profiles := tx.Where("worker_id = ?", id).Delete(&models.Profile{})
		if profiles.Error != nil {
			return fmt.Errorf("delete profile: %w", profiles.Error)
		}

		res := tx.Delete(&models.Worker{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete worker: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("worker %d: %w", id, ErrNotFound)
		}

		s.logger.Info("worker deleted",
			slog.Int64("id", id),
			slog.Int64("tasks_deleted", tasks.RowsAffected),
			slog.Int64("profiles_deleted", profiles.RowsAffected),
		)
		return nil
	})
}

func checkPosition(tx *gorm.DB, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := exists(tx, &models.Position{}, *id)
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}
	if !ok {
		return fmt.Errorf("position %d: %w", *id, ErrNotFound)
	}
	return nil
}
