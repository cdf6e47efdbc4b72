package prefs

import "sync"

// Store serializes updates to a prefs file shared by several writers.
type Store struct {
	path string

	mu    sync.Mutex
	prefs Prefs
}

// NewStore returns a Store seeded with p that saves to path.
func NewStore(path string, p Prefs) *Store {
	return &Store{path: path, prefs: p}
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn and saves the result. Nothing is written when fn leaves
// the preferences unchanged.
func (s *Store) Update(fn func(p *Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.prefs
	fn(&next)
	if next == s.prefs {
		return nil
	}
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}
