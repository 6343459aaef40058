package util

import (
	"strings"
	"time"
)

// LocalMinuteLayout is the "yyyy-MM-dd HH:mm" layout used by hourly forecasts.
const LocalMinuteLayout = "2006-01-02 15:04"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseLocalMinute parses a LocalMinuteLayout value in loc. A nil loc means UTC.
func ParseLocalMinute(value string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	ts, err := time.ParseInLocation(LocalMinuteLayout, trimmed, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
