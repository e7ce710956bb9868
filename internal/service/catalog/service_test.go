package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubRepo struct {
	products []domain.Product
	err      error
	calls    int
	watchCh  chan func(string)
}

func (r *stubRepo) List(context.Context) ([]domain.Product, error) {
	r.calls++
	return r.products, r.err
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (r *stubRepo) Watch(ctx context.Context, fn func(string)) error {
	if r.watchCh != nil {
		r.watchCh <- fn
	}
	<-ctx.Done()
	return nil
}

func product(id, title, category string, price int64, day int) domain.Product {
	return domain.Product{
		ID:        id,
		Title:     title,
		Category:  category,
		Price:     decimal.NewFromInt(price),
		SKU:       "SKU-" + id,
		Sizes:     map[string]int{"M": 1, "L": 0},
		CreatedAt: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func stocked() *stubRepo {
	return &stubRepo{products: []domain.Product{
		product("a", "Canvas Tote", "Bags ", 900, 1),
		product("b", "Leather Belt", "accessories", 1500, 3),
		product("c", "Weekend Bag", "bags", 4200, 2),
	}}
}

func ids(list []domain.Product) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestList_DefaultsToLatestFirst(t *testing.T) {
	svc := New(stocked(), Options{Logger: zerolog.Nop()})
	list, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(list))
}

func TestList_CategoryIsTrimmedAndCaseInsensitive(t *testing.T) {
	svc := New(stocked(), Options{})
	list, err := svc.List(context.Background(), Filter{Category: "  BAGS"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, ids(list))

	all, err := svc.List(context.Background(), Filter{Category: "All"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestList_QueryPriceAndSort(t *testing.T) {
	svc := New(stocked(), Options{})
	ctx := context.Background()

	list, err := svc.List(ctx, Filter{Query: "bag", Sort: SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(list))

	min := decimal.NewFromInt(1000)
	max := decimal.NewFromInt(5000)
	list, err = svc.List(ctx, Filter{MinPrice: &min, MaxPrice: &max, Sort: SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(list))

	_, err = svc.List(ctx, Filter{MinPrice: &max, MaxPrice: &min})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortLatest, s)

	s, err = ParseSort("PRICE_ASC")
	require.NoError(t, err)
	assert.Equal(t, SortPriceAsc, s)

	_, err = ParseSort("cheapest")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategories(t *testing.T) {
	svc := New(stocked(), Options{})
	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Name: "Bags", ProductCount: 1},
		{Name: "accessories", ProductCount: 1},
		{Name: "bags", ProductCount: 1},
	}, cats)
}

func TestGet(t *testing.T) {
	svc := New(stocked(), Options{})
	p, err := svc.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "Leather Belt", p.Title)

	_, err = svc.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFallback(t *testing.T) {
	ctx := context.Background()

	failing := &stubRepo{err: errors.New("connection refused")}
	list, err := New(failing, Options{Fallback: true}).List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, len(DemoProducts()))

	_, err = New(failing, Options{Fallback: false}).List(ctx, Filter{})
	assert.Error(t, err)

	empty := &stubRepo{}
	list, err = New(empty, Options{Fallback: true}).List(ctx, Filter{Category: "sneakers"})
	require.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = New(nil, Options{}).List(ctx, Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestCacheAndInvalidate(t *testing.T) {
	repo := stocked()
	svc := New(repo, Options{})
	ctx := context.Background()

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	svc.Invalidate()
	_, err = svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestWatchInvalidatesCache(t *testing.T) {
	repo := stocked()
	repo.watchCh = make(chan func(string), 1)
	svc := New(repo, Options{Logger: zerolog.Nop()})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx) }()

	var onChange func(string)
	select {
	case onChange = <-repo.watchCh:
	case <-time.After(time.Second):
		t.Fatal("watch never subscribed")
	}
	onChange("a")

	_, err = svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	cancel()
	require.NoError(t, <-done)
}

func TestAddable(t *testing.T) {
	p := product("a", "Tee", "Tops", 500, 1)
	assert.NoError(t, Addable(p, "M"))
	assert.NoError(t, Addable(p, " M "))
	assert.ErrorIs(t, Addable(p, "L"), ErrOutOfStock)
	assert.ErrorIs(t, Addable(p, "XL"), ErrOutOfStock)
	assert.ErrorIs(t, Addable(p, " "), domain.ErrInvalidInput)
}

func TestDemoProductsAreFreshCopies(t *testing.T) {
	a := DemoProducts()
	a[0].Sizes["UK7"] = 0
	b := DemoProducts()
	assert.Equal(t, 10, b[0].Stock("UK7"))
}
