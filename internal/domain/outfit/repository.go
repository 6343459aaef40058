package outfit

import "context"

// Repository persists outfit records in creation order.
type Repository interface {
	Insert(ctx context.Context, o Outfit) error
	List(ctx context.Context) ([]Outfit, error)
	// Delete removes the record; unknown ids are not an error.
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Outfit, bool, error)
}
