package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/internal/models"
)

// CreateProfile inserts the profile of a worker. A worker has at most one
// profile; a second one is rejected with ErrProfileExists.
func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertProfile(tx, p)
	})
}

// SaveProfile writes the profile row, inserting it when it has no id yet
// and overwriting every column otherwise.
func (s *Store) SaveProfile(ctx context.Context, p *models.Profile) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.ID == 0 {
			return insertProfile(tx, p)
		}
		if err := checkWorker(tx, p.WorkerID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return profileWriteError(err, "save profile")
		}
		return nil
	})
}

func insertProfile(tx *gorm.DB, p *models.Profile) error {
	if err := checkWorker(tx, p.WorkerID); err != nil {
		return err
	}
	var n int64
	if err := tx.Model(&models.Profile{}).Where("worker_id = ?", p.WorkerID).Count(&n).Error; err != nil {
		return fmt.Errorf("count profiles: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("worker %d: %w", p.WorkerID, ErrProfileExists)
	}
	if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
		return profileWriteError(err, "insert profile")
	}
	return nil
}

func profileWriteError(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrProfileExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GetProfile fetches a profile with its worker.
func (s *Store) GetProfile(ctx context.Context, id int64) (models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Preload("Worker").First(&p, id).Error; err != nil {
		return models.Profile{}, lookupError(err, "profile", id)
	}
	return p, nil
}

// GetProfileByWorker fetches the profile owned by a worker.
func (s *Store) GetProfileByWorker(ctx context.Context, workerID int64) (models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Preload("Worker").Where("worker_id = ?", workerID).First(&p).Error
	if err != nil {
		return models.Profile{}, lookupError(err, "profile of worker", workerID)
	}
	return p, nil
}

// ListProfiles returns every profile ordered by id.
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Preload("Worker").Order("id").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func checkWorker(tx *gorm.DB, id int64) error {
	ok, err := exists(tx, &models.Worker{}, id)
	if err != nil {
		return fmt.Errorf("get worker: %w", err)
	}
	if !ok {
		return fmt.Errorf("worker %d: %w", id, ErrNotFound)
	}
	return nil
}
