package kv

import "sync"

// Ensure MemStore implements Store at compile time.
var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store, used by tests.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNoKey
	}
	return append([]byte(nil), v...), nil
}

func (s *MemStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.writes++
	return nil
}

func (s *MemStore) Close() error { return nil }

// Writes reports how many Put and Delete calls the store has served.
func (s *MemStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
