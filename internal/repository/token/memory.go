package token

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

// MemoryRepo holds tokens in process memory; they do not survive a restart.
type MemoryRepo struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewMemory() *MemoryRepo {
	return &MemoryRepo{tokens: make(map[string]Token)}
}

func (r *MemoryRepo) Create(_ context.Context, token Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, token string) (*Token, error) {
	r.mu.RLock()
	t, ok := r.tokens[token]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}
