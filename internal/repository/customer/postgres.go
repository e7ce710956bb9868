package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const returning = `id::text, email, password_hash, name, address1, COALESCE(address2, ''), city, state, pincode,
          country, phone_number, COALESCE(alternate_phone_number, ''), points, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	q := `
INSERT INTO customers (
    email, password_hash, name, address1, address2, city, state, pincode, country,
    phone_number, alternate_phone_number
) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, NULLIF($11, ''))
RETURNING ` + returning
	return r.scanCustomer(r.pool.QueryRow(ctx, q,
		strings.ToLower(c.Email),
		c.PasswordHash,
		c.Name,
		c.Address1,
		c.Address2,
		c.City,
		c.State,
		c.Pincode,
		c.Country,
		c.PhoneNumber,
		c.AlternatePhoneNumber,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	q := `SELECT ` + returning + `
FROM customers
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	q := `SELECT ` + returning + `
FROM customers
WHERE id::text = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	q := `
UPDATE customers SET
    email = $2,
    name = $3,
    address1 = $4,
    address2 = NULLIF($5, ''),
    city = $6,
    state = $7,
    pincode = $8,
    country = $9,
    phone_number = $10,
    alternate_phone_number = NULLIF($11, '')
WHERE id::text = $1
RETURNING ` + returning
	return r.scanCustomer(r.pool.QueryRow(ctx, q,
		c.ID,
		strings.ToLower(c.Email),
		c.Name,
		c.Address1,
		c.Address2,
		c.City,
		c.State,
		c.Pincode,
		c.Country,
		c.PhoneNumber,
		c.AlternatePhoneNumber,
	))
}

func (r *postgresRepo) AddPoints(ctx context.Context, id string, amount int) (*domain.Customer, error) {
	q := `
UPDATE customers SET points = GREATEST(points + $2, 0)
WHERE id::text = $1
RETURNING ` + returning
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id, amount))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.Name,
		&c.Address1,
		&c.Address2,
		&c.City,
		&c.State,
		&c.Pincode,
		&c.Country,
		&c.PhoneNumber,
		&c.AlternatePhoneNumber,
		&c.Points,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error().Err(err).Msg("customer scan failed")
		return nil, err
	}
	return &c, nil
}
