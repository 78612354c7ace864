package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

type SettingsService interface {
	// Get never fails on a missing row: a tenant that saved nothing sees
	// the defaults.
	Get(ctx context.Context, userID int64) (*model.Settings, error)
	Save(ctx context.Context, s *model.Settings) (*model.Settings, error)
}

type settingsService struct {
	repo   repository.SettingsRepository
	logger zerolog.Logger
}

func NewSettingsService(repo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		logger: logger.With().Str("service", "SettingsService").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context, userID int64) (*model.Settings, error) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	if settings == nil {
		return model.DefaultSettings(userID), nil
	}
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	if err := s.repo.Upsert(ctx, settings); err != nil {
		s.logger.Error().Err(err).Int64("user_id", settings.UserID).Msg("Failed to save settings")
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return settings, nil
}
