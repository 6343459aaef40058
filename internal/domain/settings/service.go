package settings

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// Service reads and updates user settings.
type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateRequest) (Settings, error)
}

type service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires up the settings domain.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{store: store, logger: logger.With("component", "settings.service")}
}

func (s *service) Get(ctx context.Context) (Settings, error) {
	current, _, err := s.store.Get(ctx)
	if err != nil {
		return Settings{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to load settings", err)
	}
	return current, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	if req.DarkMode != nil {
		current.DarkMode = *req.DarkMode
	}
	if req.DailyNotification != nil {
		current.DailyNotification = *req.DailyNotification
	}
	if req.HomeCity != nil {
		current.HomeCity = strings.TrimSpace(*req.HomeCity)
	}
	if err := s.store.Put(ctx, current); err != nil {
		return Settings{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to save settings", err)
	}
	s.logger.Info("settings updated", "dark_mode", current.DarkMode, "daily_notification", current.DailyNotification)
	return current, nil
}
