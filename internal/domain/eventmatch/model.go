package eventmatch

import "time"

// NoForecast is the weather string used when no hourly data is available.
const NoForecast = "No forecast"

// Event is a read-only calendar entry supplied by the caller.
type Event struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	AllDay   bool      `json:"allDay"`
}

// EventForecast pairs an event with the nearest forecast hour and its advice.
type EventForecast struct {
	Event          Event      `json:"event"`
	Weather        string     `json:"weather"`
	ForecastAt     *time.Time `json:"forecastAt,omitempty"`
	Recommendation string     `json:"recommendation"`
	Emoji          string     `json:"emoji"`
	Outdoor        bool       `json:"outdoor"`
}
