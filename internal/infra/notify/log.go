package notify

import (
	"context"
	"log/slog"

	"github.com/yanqian/outfit-advisor/internal/domain/dailybrief"
)

// LogPublisher writes notifications to the structured log. Used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ dailybrief.Publisher = (*LogPublisher)(nil)

// NewLogPublisher constructs the publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "notify.log")}
}

func (p *LogPublisher) Publish(_ context.Context, n dailybrief.Notification) error {
	p.logger.Info("daily outfit",
		"city", n.City,
		"weather", n.Weather,
		"outfit", n.Outfit,
		"emoji", n.Emoji,
		"reason", n.Reason,
	)
	return nil
}
