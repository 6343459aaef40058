package preferences

import (
	"context"
	"log/slog"
	"math"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// Service loads and saves the singleton preferences record.
type Service interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) (Preferences, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the preferences domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "preferences.service")}
}

// Load returns the stored record, persisting the defaults on first use. It
// never fails: an unreadable or unwritable store yields the defaults.
func (s *service) Load(ctx context.Context) (Preferences, error) {
	prefs, ok, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("load preferences failed, using defaults", "error", err)
		return Defaults(), nil
	}
	if ok {
		return prefs, nil
	}
	prefs = Defaults()
	if err := s.repo.Upsert(ctx, prefs); err != nil {
		s.logger.Warn("persist default preferences failed", "error", err)
		return prefs, nil
	}
	s.logger.Info("default preferences created")
	return prefs, nil
}

func (s *service) Save(ctx context.Context, p Preferences) (Preferences, error) {
	if math.IsNaN(p.WeatherSensitivity) {
		return Preferences{}, apperrors.Wrap(apperrors.CodeInvalidInput, "weatherSensitivity must be a number", nil)
	}
	p = p.Clamp()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Preferences{}, apperrors.Wrap(apperrors.CodePersistenceFailure, "failed to save preferences", err)
	}
	s.logger.Info("preferences saved", "weather_sensitivity", p.WeatherSensitivity, "prefers_casual", p.PrefersCasual)
	return p, nil
}
