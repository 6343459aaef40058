package dailybrief

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/advice"
	"github.com/yanqian/outfit-advisor/internal/domain/settings"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

// Service sends the daily outfit notification when the user opted in.
type Service interface {
	// Run sends one notification. It reports whether anything was sent.
	Run(ctx context.Context) (bool, error)
}

type service struct {
	cfg       Config
	settings  settings.Service
	advice    advice.Service
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the daily brief.
func NewService(cfg Config, settingsSvc settings.Service, adviceSvc advice.Service, publisher Publisher, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		settings:  settingsSvc,
		advice:    adviceSvc,
		publisher: publisher,
		logger:    logger.With("component", "dailybrief.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Run(ctx context.Context) (bool, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if !current.DailyNotification {
		s.logger.Debug("daily notification disabled, skipping")
		return false, nil
	}
	city := firstNonEmpty(current.HomeCity, s.cfg.DefaultCity)
	if city == "" {
		s.logger.Warn("daily notification enabled but no city configured")
		return false, nil
	}

	cityAdvice, err := s.advice.ForCity(ctx, city)
	if err != nil {
		return false, err
	}
	rec := cityAdvice.Recommendation
	n := Notification{
		City:    city,
		Weather: cityAdvice.Weather,
		Outfit:  rec.Description,
		Emoji:   rec.Emoji,
		Reason:  rec.Reason,
		SentAt:  s.now(),
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		return false, err
	}
	s.logger.Info("daily notification sent", "city", city, "weather", n.Weather)
	return true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
