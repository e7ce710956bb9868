package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
)

type productWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Apply upserts the demo catalog for manual testing. Products are keyed by
// sku so running it twice is harmless.
func Apply(ctx context.Context, repo productWriter, logger zerolog.Logger) (int, error) {
	products := catalog.DemoProducts()
	for _, p := range products {
		saved, err := repo.Upsert(ctx, p)
		if err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
		logger.Debug().Str("product_id", saved.ID).Str("sku", saved.SKU).Msg("seeded product")
	}
	return len(products), nil
}
