package memory

import (
	"context"
	"sync"

	"personality-quiz/internal/domain"
)

// KV is an in-memory implementation of history.KV. Nothing survives the
// process; it backs tests and the "memory" storage backend.
type KV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKV() *KV {
	return &KV{
		values: make(map[string][]byte),
	}
}

func (s *KV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return clone(value), nil
}

func (s *KV) Update(_ context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current []byte
	if value, ok := s.values[key]; ok {
		current = clone(value)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	s.values[key] = clone(next)
	return nil
}

func (s *KV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
