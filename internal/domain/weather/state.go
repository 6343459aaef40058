package weather

import (
	"strings"
	"sync"
)

// Listener receives every reading applied to a State.
type Listener func(Reading)

// State holds the latest known reading per city. Concurrent fetches for the
// same city are not de-duplicated; whichever result is applied last wins.
type State struct {
	mu        sync.RWMutex
	latest    map[string]Reading
	listeners map[int]Listener
	nextID    int
}

// NewState constructs an empty State.
func NewState() *State {
	return &State{
		latest:    make(map[string]Reading),
		listeners: make(map[int]Listener),
	}
}

// Apply records r as the latest reading for its city and notifies listeners
// on the caller's goroutine.
func (s *State) Apply(r Reading) {
	s.Record(r.City, r)
}

// Record stores r under the city it was requested for and under the
// upstream's name for it, then notifies listeners once.
func (s *State) Record(query string, r Reading) {
	s.mu.Lock()
	s.latest[cityKey(query)] = r
	if r.City != "" {
		s.latest[cityKey(r.City)] = r
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(r)
	}
}

// Latest returns the most recently applied reading for city.
func (s *State) Latest(city string) (Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.latest[cityKey(city)]
	return r, ok
}

// Subscribe registers l and returns a function that removes it.
func (s *State) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
