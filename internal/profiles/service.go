// Package profiles saves worker profiles and keeps their avatars inside
// the avatar bounding box.
//
// Saving is two steps: the row is written first, then the stored avatar
// is normalized. If the second step fails the row stays written and the
// returned error wraps ErrAvatarNotNormalized.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"taskmanager/internal/avatar"
	"taskmanager/internal/models"
)

// ErrAvatarNotNormalized reports a profile row that was written while its
// avatar could not be decoded or rewritten.
var ErrAvatarNotNormalized = errors.New("profile saved but avatar not normalized")

// Store is the persistence the service needs.
type Store interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	SaveProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id int64) (models.Profile, error)
}

// Normalizer fits a stored avatar into the bounding box.
type Normalizer interface {
	Normalize(name string) (bool, error)
}

// Service coordinates profile rows and avatar files.
type Service struct {
	store  Store
	media  *avatar.Media
	norm   Normalizer
	logger *slog.Logger
}

// NewService builds a Service writing avatars to media.
func NewService(store Store, media *avatar.Media, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, media: media, norm: media, logger: logger}
}

// Create inserts a new profile and normalizes its avatar.
func (s *Service) Create(ctx context.Context, p *models.Profile) error {
	if err := s.store.CreateProfile(ctx, p); err != nil {
		return err
	}
	return s.NormalizeAvatar(p)
}

// Save writes the profile row and then normalizes its avatar. The resize
// runs on every save whose avatar is oversized, whatever fields changed.
func (s *Service) Save(ctx context.Context, p *models.Profile) error {
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return err
	}
	return s.NormalizeAvatar(p)
}

// NormalizeAvatar fits the avatar of an already stored profile into the
// bounding box.
func (s *Service) NormalizeAvatar(p *models.Profile) error {
	resized, err := s.norm.Normalize(p.Avatar)
	if err != nil {
		s.logger.Error("avatar normalization failed",
			slog.Int64("profile_id", p.ID),
			slog.String("avatar", p.Avatar),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("profile %d: %w: %w", p.ID, ErrAvatarNotNormalized, err)
	}
	if resized {
		s.logger.Info("avatar resized", slog.Int64("profile_id", p.ID), slog.String("avatar", p.Avatar))
	}
	return nil
}

// UploadAvatar stores a new avatar file, points the profile at it and
// saves the profile.
func (s *Service) UploadAvatar(ctx context.Context, profileID int64, filename string, r io.Reader) (models.Profile, error) {
	p, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return models.Profile{}, err
	}

	name, err := s.media.SaveUpload(filename, r)
	if err != nil {
		return models.Profile{}, err
	}

	p.Avatar = name
	if err := s.Save(ctx, &p); err != nil {
		return p, err
	}
	return p, nil
}
