package cart

import (
	"context"
	"sync"
)

// MemoryRepo is a process-local Repository, used in tests and when
// persistence is switched off.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]byte)}
}

func (r *MemoryRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	v, ok := r.data[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrEmpty
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *MemoryRepo) Put(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	r.mu.Lock()
	r.data[key] = v
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.data, key)
	r.mu.Unlock()
	return nil
}
