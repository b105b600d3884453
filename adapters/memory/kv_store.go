// Package memory implements an in-memory key/value store for tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"myclient/interfaces"
)

// KVStore keeps values in a map. Nothing survives the process.
type KVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory store.
func New() *KVStore {
	return &KVStore{values: make(map[string]string)}
}

// Ensure interfaces are met.
var _ interfaces.KVStore = (*KVStore)(nil)

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *KVStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Snapshot returns a copy of every stored value.
func (s *KVStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
