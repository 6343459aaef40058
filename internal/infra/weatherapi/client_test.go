package weatherapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

func newTestClient(baseURL string, breaker config.BreakerConfig) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(config.WeatherConfig{APIKey: "k", BaseURL: baseURL, Breaker: breaker}, logger)
}

func TestCurrentParsesReading(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/current.json", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		require.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = io.WriteString(w, `{"location":{"name":"New York","tz_id":"America/New_York"},
			"current":{"temp_f":71.6,"last_updated":"2024-05-01 09:15","condition":{"text":"Sunny","icon":"//cdn.weatherapi.com/113.png"}}}`)
	}))
	defer srv.Close()

	reading, err := newTestClient(srv.URL, config.BreakerConfig{}).Current(context.Background(), "  New York ")
	require.NoError(t, err)
	require.Equal(t, "New York", gotQuery)
	require.Equal(t, "72°F, Sunny", reading.String())
	require.Equal(t, "https://cdn.weatherapi.com/113.png", reading.Icon)
	require.Equal(t, "New York", reading.City)
	ny, _ := time.LoadLocation("America/New_York")
	require.True(t, reading.Time.Equal(time.Date(2024, 5, 1, 9, 15, 0, 0, ny)))
}

func TestCurrentRejectsBlankCity(t *testing.T) {
	_, err := newTestClient("http://unused.invalid", config.BreakerConfig{}).Current(context.Background(), "   ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCurrentDecodeFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"malformed json":    {http.StatusOK, `{"current":`},
		"missing condition": {http.StatusOK, `{"current":{"temp_f":50,"condition":{"text":""}}}`},
		"upstream error":    {http.StatusBadRequest, `{"error":{"code":9999,"message":"Internal application error."}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, config.BreakerConfig{}).Current(context.Background(), "Nowhere")
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeDecodeFailure), "got %v", err)
		})
	}
}

func TestCurrentNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, config.BreakerConfig{}).Current(context.Background(), "Paris")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNetworkFailure))
}

func TestHourlySkipsBadEntriesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forecast.json", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("days"))
		_, _ = io.WriteString(w, `{"location":{"name":"Paris","tz_id":"Europe/Paris"},"forecast":{"forecastday":[{"hour":[
			{"time":"2024-05-01 10:00","temp_f":60,"condition":{"text":"Cloudy"}},
			{"time":"not a time","temp_f":61,"condition":{"text":"Cloudy"}},
			{"time":"2024-05-01 09:00","temp_f":58.4,"condition":{"text":"Light rain"}},
			{"time":"2024-05-01 11:00","temp_f":62,"condition":{"text":""}}
		]}]}}`)
	}))
	defer srv.Close()

	forecast, err := newTestClient(srv.URL, config.BreakerConfig{}).Hourly(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, forecast, 2)
	paris, _ := time.LoadLocation("Europe/Paris")
	require.True(t, forecast[0].At.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, paris)))
	require.Equal(t, "58°F, Light rain", forecast[0].Reading.String())
	require.Equal(t, "60°F, Cloudy", forecast[1].Reading.String())
}

func TestHourlyUnknownZoneFallsBackToUTC(t *testing.T) {
	raw := forecastResponse{Location: location{TzID: "Not/AZone"}}
	raw.Forecast.ForecastDay = append(raw.Forecast.ForecastDay, struct {
		Hour []hour `json:"hour"`
	}{Hour: []hour{{Time: "2024-05-01 10:00", TempF: 40, Condition: condition{Text: "Snow"}}}})

	forecast := normalizeHours(raw, "Oslo")
	require.Len(t, forecast, 1)
	require.Equal(t, time.UTC, forecast[0].At.Location())
	require.Equal(t, "Oslo", forecast[0].Reading.City)
}

func TestBreakerOpensAfterNetworkFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, config.BreakerConfig{
		Enabled:     true,
		MinRequests: 2,
		FailureRate: 1,
		OpenTimeout: time.Minute,
	})
	for i := 0; i < 2; i++ {
		_, err := client.Current(context.Background(), "Paris")
		require.True(t, apperrors.IsCode(err, apperrors.CodeNetworkFailure))
	}

	_, err := client.Current(context.Background(), "Paris")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNetworkFailure))
	require.Equal(t, int32(2), calls.Load())
}

func TestCurrentUnknownLocationIsInvalidInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":1006,"message":"No matching location found."}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, config.BreakerConfig{}).Current(context.Background(), "Atlantis")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "got %v", err)
	require.Equal(t, "Invalid city", apperrors.UserMessage(err))
}

func TestBreakerIgnoresDecodeFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":9999,"message":"Internal application error."}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, config.BreakerConfig{Enabled: true, MinRequests: 1, FailureRate: 0.5, OpenTimeout: time.Minute})
	for i := 0; i < 3; i++ {
		_, err := client.Current(context.Background(), "Atlantis")
		require.True(t, apperrors.IsCode(err, apperrors.CodeDecodeFailure))
	}
	require.Equal(t, int32(3), calls.Load())
}
