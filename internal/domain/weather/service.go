package weather

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

// Service exposes weather lookups and the last-known reading per city.
type Service interface {
	Current(ctx context.Context, city string) (Reading, error)
	Hourly(ctx context.Context, city string) (HourlyForecast, error)
	Latest(city string) (Reading, bool)
}

type service struct {
	client Client
	state  *State
	logger *slog.Logger
}

// NewService wires up the weather domain.
func NewService(client Client, state *State, logger *slog.Logger) Service {
	return &service{
		client: client,
		state:  state,
		logger: logger.With("component", "weather.service"),
	}
}

func (s *service) Current(ctx context.Context, city string) (Reading, error) {
	city, err := normalizeCity(city)
	if err != nil {
		return Reading{}, err
	}
	reading, err := s.client.Current(ctx, city)
	if err != nil {
		s.logger.Warn("current weather fetch failed", "city", city, "code", apperrors.CodeOf(err), "error", err)
		return Reading{}, err
	}
	if reading.City == "" {
		reading.City = city
	}
	s.state.Record(city, reading)
	s.logger.Info("current weather fetched", "city", city, "weather", reading.String())
	return reading, nil
}

func (s *service) Hourly(ctx context.Context, city string) (HourlyForecast, error) {
	city, err := normalizeCity(city)
	if err != nil {
		return nil, err
	}
	forecast, err := s.client.Hourly(ctx, city)
	if err != nil {
		s.logger.Warn("hourly forecast fetch failed", "city", city, "code", apperrors.CodeOf(err), "error", err)
		return nil, err
	}
	s.logger.Info("hourly forecast fetched", "city", city, "hours", len(forecast))
	return forecast, nil
}

func (s *service) Latest(city string) (Reading, bool) {
	return s.state.Latest(city)
}

func normalizeCity(city string) (string, error) {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "city cannot be empty", nil)
	}
	return trimmed, nil
}
