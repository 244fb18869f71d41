package memory

import (
	"context"
	"slices"
	"sync"
)

// KVStore keeps preferences in process memory. Used for tests and the "memory" storage driver.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}
