// Package memstore is a process-local storage backend. Nothing survives exit.
package memstore

import "sync"

type Store struct {
	mu     sync.Mutex
	values map[string][]byte
	// Writes counts successful Set calls.
	Writes int
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	s.Writes++
	return nil
}

func (s *Store) Close() error { return nil }
