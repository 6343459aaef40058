package prefsrepo

import (
	"context"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/preferences"
)

// MemoryRepository keeps the preferences record in memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	record *preferences.Preferences
}

var _ preferences.Repository = (*MemoryRepository)(nil)

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Get(_ context.Context) (preferences.Preferences, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.record == nil {
		return preferences.Preferences{}, false, nil
	}
	return *r.record, true, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, p preferences.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record = &p
	return nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.record == nil {
		return 0, nil
	}
	return 1, nil
}
