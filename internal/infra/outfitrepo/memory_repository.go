package outfitrepo

import (
	"context"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
)

// MemoryRepository is an in-memory outfit.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []outfit.Outfit
}

var _ outfit.Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements outfit.Repository.
func (r *MemoryRepository) Insert(_ context.Context, o outfit.Outfit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, o)
	return nil
}

// List implements outfit.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]outfit.Outfit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]outfit.Outfit, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Delete implements outfit.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Get implements outfit.Repository.
func (r *MemoryRepository) Get(_ context.Context, id string) (outfit.Outfit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return outfit.Outfit{}, false, nil
}
