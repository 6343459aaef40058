package settings

import "context"

// Store defines the persistence contract for user settings.
type Store interface {
	Get(ctx context.Context) (Settings, bool, error)
	Put(ctx context.Context, s Settings) error
}
