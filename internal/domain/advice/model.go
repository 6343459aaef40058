package advice

import (
	"github.com/yanqian/outfit-advisor/internal/domain/eventmatch"
	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
)

// CityAdvice is the current weather for a city and the matching outfit.
type CityAdvice struct {
	City           string                   `json:"city"`
	Weather        string                   `json:"weather"`
	Reading        weather.Reading          `json:"reading"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}

// EventsRequest asks for per-event advice. When Hourly is empty and City is
// set, the forecast is fetched for City.
type EventsRequest struct {
	City   string                 `json:"city"`
	Hourly weather.HourlyForecast `json:"hourly"`
	Events []eventmatch.Event     `json:"events"`
}

// EventsResponse is the per-event advice in request order.
type EventsResponse struct {
	City      string                     `json:"city,omitempty"`
	Forecasts []eventmatch.EventForecast `json:"forecasts"`
}
