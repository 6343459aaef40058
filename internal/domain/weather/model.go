package weather

import (
	"fmt"
	"math"
	"time"
)

// Reading is a single normalized observation or forecast point.
type Reading struct {
	City        string    `json:"city,omitempty"`
	Temperature float64   `json:"temperatureF"`
	Condition   string    `json:"condition"`
	Icon        string    `json:"icon,omitempty"`
	Time        time.Time `json:"time,omitempty"`
}

// RoundedTemperature is the temperature rounded for display.
func (r Reading) RoundedTemperature() int {
	return int(math.Round(r.Temperature))
}

// String renders the normalized weather string, e.g. "72°F, Sunny".
func (r Reading) String() string {
	return fmt.Sprintf("%d°F, %s", r.RoundedTemperature(), r.Condition)
}

// Valid reports whether the reading carries a condition.
func (r Reading) Valid() bool {
	return r.Condition != ""
}

// HourlyReading is a Reading pinned to a forecast hour.
type HourlyReading struct {
	At      time.Time `json:"at"`
	Reading Reading   `json:"reading"`
}

// HourlyForecast holds one day of hourly readings sorted by time ascending.
type HourlyForecast []HourlyReading

// Len, Less and Swap make HourlyForecast sortable.
func (f HourlyForecast) Len() int           { return len(f) }
func (f HourlyForecast) Less(i, j int) bool { return f[i].At.Before(f[j].At) }
func (f HourlyForecast) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
