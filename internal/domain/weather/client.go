package weather

import "context"

// Client fetches weather from an upstream provider. Implementations return
// AppErrors coded invalid_input, network_failure or decode_failure.
type Client interface {
	Current(ctx context.Context, city string) (Reading, error)
	Hourly(ctx context.Context, city string) (HourlyForecast, error)
}
