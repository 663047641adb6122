package storage

import (
	"context"
	"sync"

	"safety-watch/internal/domain/port"
)

// MemoryRepository is an in-memory key-value store, used in tests and as
// a throwaway backend.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

// Load returns the stored value, or (nil, nil) when absent.
func (r *MemoryRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Save stores a copy of the value.
func (r *MemoryRepository) Save(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), value...)
	return nil
}

var _ port.StateRepository = (*MemoryRepository)(nil)
