package product

import (
	"context"

	"storefront/internal/domain"
)

// ChangeChannel is the NOTIFY channel fired by the products trigger.
const ChangeChannel = "products_changed"

// Repository reads and writes catalog products.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Watch blocks until ctx is done, calling fn with the id of every
	// product that changes.
	Watch(ctx context.Context, fn func(productID string)) error
}
