package state

import (
	"sync"
	"time"
)

// Store owns the single AppState instance. All mutations go through its
// methods, run synchronously to completion, and notify observers with a
// deep-copy snapshot afterwards. There is exactly one writer per process;
// the mutex only guards against observer goroutines reading mid-mutation.
type Store struct {
	mu    sync.Mutex
	state AppState
	now   func() time.Time
	subs  []func(AppState)
}

// NewStore wraps an initial state, typically the result of blob.Load.
func NewStore(initial AppState) *Store {
	return &Store{
		state: initial,
		now:   time.Now,
	}
}

// OnChange registers an observer invoked with a snapshot after every
// successful mutation. Observers must not call back into the store.
func (s *Store) OnChange(fn func(AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a deep copy of the current state for render paths.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Preferences returns a copy of the current user preferences.
func (s *Store) Preferences() UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserPreferences
}

// mutate runs fn under the lock and broadcasts a snapshot unless fn failed
// or reported errNoChange.
func (s *Store) mutate(fn func(now Millis) error) error {
	s.mu.Lock()
	err := fn(At(s.now()))
	if err != nil {
		s.mu.Unlock()
		if err == errNoChange {
			return nil
		}
		return err
	}
	snap := s.state.Clone()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}
