package eventmatch

import (
	"sort"
	"time"

	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	"github.com/yanqian/outfit-advisor/internal/domain/weather"
)

// Match assigns every event the forecast hour closest to its start and runs
// the pair through the recommendation engine. Output order follows events.
// Equidistant hours resolve to the earlier one. Inputs are not modified.
func Match(events []Event, hourly weather.HourlyForecast) []EventForecast {
	sorted := make(weather.HourlyForecast, len(hourly))
	copy(sorted, hourly)
	sort.Stable(sorted)

	out := make([]EventForecast, 0, len(events))
	for _, ev := range events {
		forecast := EventForecast{Event: ev, Weather: NoForecast}
		if nearest, ok := nearestHour(sorted, ev.Start); ok {
			at := nearest.At
			forecast.Weather = nearest.Reading.String()
			forecast.ForecastAt = &at
		}
		advice := recommend.AdviseEvent(forecast.Weather, ev.Title)
		forecast.Recommendation = advice.Text
		forecast.Emoji = advice.Emoji
		forecast.Outdoor = advice.Outdoor
		out = append(out, forecast)
	}
	return out
}

// nearestHour expects hours sorted ascending; the strict comparison keeps the
// earliest of several equidistant entries.
func nearestHour(hours weather.HourlyForecast, target time.Time) (weather.HourlyReading, bool) {
	if len(hours) == 0 {
		return weather.HourlyReading{}, false
	}
	best := hours[0]
	bestDiff := absDuration(best.At.Sub(target))
	for _, h := range hours[1:] {
		if diff := absDuration(h.At.Sub(target)); diff < bestDiff {
			best = h
			bestDiff = diff
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
