package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// CreatePosition validates and inserts a position.
func (s *Store) CreatePosition(ctx context.Context, name models.PositionName) (models.Position, error) {
	p := models.Position{Name: name}
	if err := models.Validate(&p); err != nil {
		return models.Position{}, err
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Position{}, writeError(err, "insert position")
	}
	return p, nil
}

// GetPosition fetches a single position by id.
func (s *Store) GetPosition(ctx context.Context, id int64) (models.Position, error) {
	var p models.Position
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return models.Position{}, lookupError(err, "position", id)
	}
	return p, nil
}

// ListPositions returns all positions ordered by name.
func (s *Store) ListPositions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.WithContext(ctx).Order("name, id").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// DeletePosition removes a position after clearing it from every worker
// that holds it.
func (s *Store) DeletePosition(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		detached := tx.Model(&models.Worker{}).Where("position_id = ?", id).Update("position_id", nil)
		if detached.Error != nil {
			return fmt.Errorf("detach workers: %w", detached.Error)
		}

		res := tx.Delete(&models.Position{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete position: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("position %d: %w", id, ErrNotFound)
		}

		s.logger.Info("position deleted", slog.Int64("id", id), slog.Int64("workers_detached", detached.RowsAffected))
		return nil
	})
}
