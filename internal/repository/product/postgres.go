package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `id, title, COALESCE(description, ''), price::text, sku, COALESCE(color, ''), category, sizes, images, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + `
FROM products
ORDER BY created_at DESC, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("product list failed")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("product list rows failed")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("product list")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + selectColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("product get failed")
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, price, sku, color, category, sizes, images)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, NULLIF($3, ''), $4::numeric, $5, NULLIF($6, ''), $7, $8, $9)
ON CONFLICT (sku) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    color = EXCLUDED.color,
    category = EXCLUDED.category,
    sizes = EXCLUDED.sizes,
    images = EXCLUDED.images
RETURNING id, created_at
`
	sizes := p.Sizes
	if sizes == nil {
		sizes = map[string]int{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}

	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID,
		p.Title,
		p.Description,
		p.Price.String(),
		p.SKU,
		p.Color,
		p.Category,
		sizes,
		images,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", p.SKU).Msg("product upsert failed")
		return nil, err
	}
	if p.ID != "" && res.ID != p.ID {
		return nil, fmt.Errorf("product repo: id mismatch for sku=%s existing_id=%s import_id=%s", p.SKU, res.ID, p.ID)
	}
	res.Sizes = sizes
	res.Images = images
	r.logger.Debug().Str("sku", res.SKU).Str("product_id", res.ID).Msg("product upserted")
	return &res, nil
}

func (r *postgresRepo) Watch(ctx context.Context, fn func(productID string)) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return fmt.Errorf("listen %s: %w", ChangeChannel, err)
	}
	r.logger.Info().Str("channel", ChangeChannel).Msg("watching product changes")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		fn(n.Payload)
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &price, &p.SKU, &p.Color, &p.Category, &p.Sizes, &p.Images, &p.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product %s: price %q: %w", p.ID, price, err)
	}
	p.Price = d
	return &p, nil
}
