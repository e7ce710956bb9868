package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Sort orders a listing.
type Sort string

const (
	SortLatest    Sort = "latest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort maps a query value to a Sort; empty means SortLatest.
func ParseSort(v string) (Sort, error) {
	switch s := Sort(strings.ToLower(strings.TrimSpace(v))); s {
	case "":
		return SortLatest, nil
	case SortLatest, SortPriceAsc, SortPriceDesc:
		return s, nil
	default:
		return "", fmt.Errorf("unknown sort %q: %w", v, domain.ErrInvalidInput)
	}
}

// Filter narrows a listing. Zero values match everything; the category
// "all" is treated as no category.
type Filter struct {
	Category string
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     Sort
}

type Options struct {
	// Fallback serves DemoProducts when the repository fails or is empty.
	Fallback bool
	Logger   zerolog.Logger
}

// Service lists catalog products. Results from the repository are cached
// until Invalidate is called, usually from the change feed started by Watch.
type Service struct {
	repo     productrepo.Repository
	fallback bool
	logger   zerolog.Logger

	mu     sync.RWMutex
	cached []domain.Product
}

// New returns a catalog Service. repo may be nil, in which case only the
// demo catalog is served (and Fallback is forced on).
func New(repo productrepo.Repository, opts Options) *Service {
	return &Service{
		repo:     repo,
		fallback: opts.Fallback || repo == nil,
		logger:   opts.Logger,
	}
}

func (s *Service) products(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	if s.repo == nil {
		return DemoProducts(), nil
	}

	list, err := s.repo.List(ctx)
	switch {
	case err != nil && s.fallback:
		s.logger.Warn().Err(err).Msg("product fetch failed, serving demo catalog")
		return DemoProducts(), nil
	case err != nil:
		return nil, err
	case len(list) == 0 && s.fallback:
		s.logger.Info().Msg("no products stored, serving demo catalog")
		return DemoProducts(), nil
	}

	s.mu.Lock()
	s.cached = list
	s.mu.Unlock()
	return list, nil
}

// Invalidate drops the cached listing.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Watch follows the repository change feed and invalidates the cache on
// every change. It blocks until ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	if s.repo == nil {
		<-ctx.Done()
		return nil
	}
	return s.repo.Watch(ctx, func(productID string) {
		s.logger.Debug().Str("product_id", productID).Msg("product changed, dropping catalog cache")
		s.Invalidate()
	})
}

// List returns the products matching f in the requested order.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	all, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, fmt.Errorf("minPrice above maxPrice: %w", domain.ErrInvalidInput)
	}

	category := strings.ToLower(strings.TrimSpace(f.Category))
	if category == "all" {
		category = ""
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category != "" && strings.ToLower(strings.TrimSpace(p.Category)) != category {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	default:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out, nil
}

func matches(p domain.Product, query string) bool {
	for _, field := range []string{p.Title, p.Category, p.Description, p.SKU} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Categories lists the distinct trimmed category names, sorted, with the
// number of products in each.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	all, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range all {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		counts[name]++
	}
	out := make([]domain.Category, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.Category{Name: name, ProductCount: n})
	}
	slices.SortFunc(out, func(a, b domain.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	all, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ErrOutOfStock reports a size that is unknown or sold out.
var ErrOutOfStock = errors.New("size out of stock")

// Addable reports whether size can be added to a cart: it must exist on the
// product with stock above zero.
func Addable(p domain.Product, size string) error {
	size = strings.TrimSpace(size)
	if size == "" {
		return fmt.Errorf("size required: %w", domain.ErrInvalidInput)
	}
	if p.Stock(size) <= 0 {
		return fmt.Errorf("%s size %s: %w", p.ID, size, ErrOutOfStock)
	}
	return nil
}
