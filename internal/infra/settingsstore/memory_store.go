package settingsstore

import (
	"context"
	"sync"

	"github.com/yanqian/outfit-advisor/internal/domain/settings"
)

// MemoryStore keeps settings in memory for tests/dev.
type MemoryStore struct {
	mu    sync.RWMutex
	value *settings.Settings
}

var _ settings.Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (settings.Settings, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == nil {
		return settings.Settings{}, false, nil
	}
	return *s.value, true, nil
}

func (s *MemoryStore) Put(_ context.Context, value settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = &value
	return nil
}
