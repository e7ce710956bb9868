package customer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// MemoryRepo keeps accounts in process memory. It backs the API when no
// database is configured and stands in for Postgres in tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.Customer
	byEmail map[string]string
}

func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]domain.Customer),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	email := strings.ToLower(c.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	c.ID = uuid.NewString()
	c.Email = email
	c.Points = 0
	c.CreatedAt = time.Now().UTC()
	r.byID[c.ID] = c
	r.byEmail[email] = c.ID
	return &c, nil
}

func (r *MemoryRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := r.byID[id]
	return &c, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepo) Update(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[c.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	email := strings.ToLower(c.Email)
	if other, taken := r.byEmail[email]; taken && other != c.ID {
		return nil, domain.ErrAlreadyExists
	}
	delete(r.byEmail, cur.Email)
	r.byEmail[email] = c.ID

	cur.Email = email
	cur.Name = c.Name
	cur.Address1 = c.Address1
	cur.Address2 = c.Address2
	cur.City = c.City
	cur.State = c.State
	cur.Pincode = c.Pincode
	cur.Country = c.Country
	cur.PhoneNumber = c.PhoneNumber
	cur.AlternatePhoneNumber = c.AlternatePhoneNumber
	r.byID[c.ID] = cur
	return &cur, nil
}

func (r *MemoryRepo) AddPoints(_ context.Context, id string, amount int) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Points = max(c.Points+amount, 0)
	r.byID[id] = c
	return &c, nil
}
