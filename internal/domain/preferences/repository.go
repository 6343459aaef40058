package preferences

import "context"

// Repository stores the singleton preferences record.
type Repository interface {
	// Get returns false when no record has been written yet.
	Get(ctx context.Context) (Preferences, bool, error)
	// Upsert replaces the record, creating it if needed.
	Upsert(ctx context.Context, p Preferences) error
}
