package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yanqian/outfit-advisor/internal/domain/weather"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Client fetches current and hourly weather from weatherapi.com.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

var _ weather.Client = (*Client)(nil)

// NewClient builds an API client. The HTTP client keeps transport defaults and
// each lookup is attempted once.
func NewClient(cfg config.WeatherConfig, logger *slog.Logger) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		logger:     logger.With("component", "weatherapi.client"),
	}
	if cfg.Breaker.Enabled {
		c.breaker = newBreaker(cfg.Breaker, c.logger)
	}
	return c
}

func newBreaker(cfg config.BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRate
		},
		// Only transport failures say anything about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || !apperrors.IsCode(err, apperrors.CodeNetworkFailure)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Current retrieves the current conditions for a city.
func (c *Client) Current(ctx context.Context, city string) (weather.Reading, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Reading{}, apperrors.Wrap(apperrors.CodeInvalidInput, "city is required", nil)
	}

	body, err := c.get(ctx, "current.json", url.Values{"q": {city}})
	if err != nil {
		return weather.Reading{}, err
	}

	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Reading{}, apperrors.Wrap(apperrors.CodeDecodeFailure, "decode current weather", err)
	}
	if raw.Current == nil || strings.TrimSpace(raw.Current.Condition.Text) == "" {
		return weather.Reading{}, apperrors.Wrap(apperrors.CodeDecodeFailure, "current weather missing condition", nil)
	}

	loc := raw.Location.timeZone()
	updated, _ := util.ParseLocalMinute(raw.Current.LastUpdated, loc)
	return weather.Reading{
		City:        firstNonEmpty(raw.Location.Name, city),
		Temperature: raw.Current.TempF,
		Condition:   strings.TrimSpace(raw.Current.Condition.Text),
		Icon:        normalizeIcon(raw.Current.Condition.Icon),
		Time:        updated,
	}, nil
}

// Hourly retrieves today's hourly forecast for a city. Hours whose timestamp
// or condition cannot be read are skipped.
func (c *Client) Hourly(ctx context.Context, city string) (weather.HourlyForecast, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "city is required", nil)
	}

	body, err := c.get(ctx, "forecast.json", url.Values{"q": {city}, "days": {"1"}})
	if err != nil {
		return nil, err
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDecodeFailure, "decode hourly forecast", err)
	}

	return normalizeHours(raw, city), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.breaker == nil {
		return c.do(ctx, path, params)
	}
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, path, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperrors.Wrap(apperrors.CodeNetworkFailure, "weather api unavailable", err)
	}
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "build weather request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetworkFailure, "weather request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetworkFailure, "read weather response", err)
	}

	if resp.StatusCode >= 300 {
		var upstream errorResponse
		if jsonErr := json.Unmarshal(body, &upstream); jsonErr == nil && upstream.Error.Message != "" {
			c.logger.Warn("weather api error", "status", resp.StatusCode, "upstream_code", upstream.Error.Code, "message", upstream.Error.Message)
			if resp.StatusCode < 500 && upstream.Error.Code == codeNoMatchingLocation {
				return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid city", fmt.Errorf("weather api: %s", upstream.Error.Message))
			}
			return nil, apperrors.Wrap(apperrors.CodeDecodeFailure, upstream.Error.Message, fmt.Errorf("weather api status %d", resp.StatusCode))
		}
		if resp.StatusCode >= 500 {
			return nil, apperrors.Wrap(apperrors.CodeNetworkFailure, "weather api unavailable", fmt.Errorf("weather api status %d", resp.StatusCode))
		}
		return nil, apperrors.Wrap(apperrors.CodeDecodeFailure, "unexpected weather response", fmt.Errorf("weather api status %d", resp.StatusCode))
	}
	return body, nil
}

type location struct {
	Name string `json:"name"`
	TzID string `json:"tz_id"`
}

func (l location) timeZone() *time.Location {
	if l.TzID == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.TzID)
	if err != nil {
		return time.UTC
	}
	return loc
}

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type currentResponse struct {
	Location location `json:"location"`
	Current  *struct {
		TempF       float64   `json:"temp_f"`
		LastUpdated string    `json:"last_updated"`
		Condition   condition `json:"condition"`
	} `json:"current"`
}

type forecastResponse struct {
	Location location `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Hour []hour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type hour struct {
	Time      string    `json:"time"`
	TempF     float64   `json:"temp_f"`
	Condition condition `json:"condition"`
}

// codeNoMatchingLocation is the upstream error code for an unknown q parameter.
const codeNoMatchingLocation = 1006

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func normalizeHours(raw forecastResponse, city string) weather.HourlyForecast {
	loc := raw.Location.timeZone()
	name := firstNonEmpty(raw.Location.Name, city)

	out := make(weather.HourlyForecast, 0, 24)
	for _, day := range raw.Forecast.ForecastDay {
		for _, h := range day.Hour {
			at, ok := util.ParseLocalMinute(h.Time, loc)
			if !ok {
				continue
			}
			cond := strings.TrimSpace(h.Condition.Text)
			if cond == "" {
				continue
			}
			out = append(out, weather.HourlyReading{
				At: at,
				Reading: weather.Reading{
					City:        name,
					Temperature: h.TempF,
					Condition:   cond,
					Icon:        normalizeIcon(h.Condition.Icon),
					Time:        at,
				},
			})
		}
	}
	sort.Stable(out)
	return out
}

// normalizeIcon turns protocol-relative icon paths into https URLs.
func normalizeIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
