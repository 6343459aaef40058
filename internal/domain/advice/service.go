package advice

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/outfit-advisor/internal/domain/eventmatch"
	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
)

// Service combines weather lookups with the recommendation engine.
type Service interface {
	ForCity(ctx context.Context, city string) (CityAdvice, error)
	ForEvents(ctx context.Context, req EventsRequest) (EventsResponse, error)
}

type service struct {
	weather weather.Service
	logger  *slog.Logger
}

// NewService wires up the advice domain.
func NewService(weatherSvc weather.Service, logger *slog.Logger) Service {
	return &service{weather: weatherSvc, logger: logger.With("component", "advice.service")}
}

func (s *service) ForCity(ctx context.Context, city string) (CityAdvice, error) {
	reading, err := s.weather.Current(ctx, city)
	if err != nil {
		return CityAdvice{}, err
	}
	normalized := reading.String()
	return CityAdvice{
		City:           reading.City,
		Weather:        normalized,
		Reading:        reading,
		Recommendation: recommend.Recommend(normalized),
	}, nil
}

// ForEvents fetches the hourly forecast when needed and matches events to it.
// A failed fetch is returned to the caller; nothing is matched against stale data.
func (s *service) ForEvents(ctx context.Context, req EventsRequest) (EventsResponse, error) {
	hourly := req.Hourly
	city := strings.TrimSpace(req.City)
	if len(hourly) == 0 && city != "" {
		fetched, err := s.weather.Hourly(ctx, city)
		if err != nil {
			return EventsResponse{}, err
		}
		hourly = fetched
	}
	forecasts := eventmatch.Match(req.Events, hourly)
	s.logger.Info("events matched", "city", city, "events", len(req.Events), "hours", len(hourly))
	return EventsResponse{City: city, Forecasts: forecasts}, nil
}
