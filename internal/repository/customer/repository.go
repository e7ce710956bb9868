package customer

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches customer accounts.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// Update overwrites the profile fields. Email, password hash and points
	// are left alone unless set through their own calls.
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	AddPoints(ctx context.Context, id string, amount int) (*domain.Customer, error)
}
