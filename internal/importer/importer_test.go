package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,title,description,price,sku,color,category,sizes,image
1,Air Jordan 1,Classic,3499,NK-AJ1,Chicago,Sneakers,UK7:10;UK8:4,https://example.com/aj1-a.jpg
,,,,,,,,https://example.com/aj1-b.jpg
,Foam Runner,,1999.50,AD-FOAM,Sand, Clogs ,UK7;UK9:2,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, zerolog.Nop())

	count, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.items, 2)

	first := repo.items[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "NK-AJ1", first.SKU)
	assert.True(t, first.Price.Equal(decimal.NewFromInt(3499)))
	assert.Equal(t, map[string]int{"UK7": 10, "UK8": 4}, first.Sizes)
	assert.Equal(t, []string{"https://example.com/aj1-a.jpg", "https://example.com/aj1-b.jpg"}, first.Images)

	second := repo.items[1]
	assert.Empty(t, second.ID)
	assert.Equal(t, "Clogs", second.Category)
	assert.Equal(t, "1999.5", second.Price.String())
	assert.Equal(t, map[string]int{"UK7": 0, "UK9": 2}, second.Sizes)
	assert.NotNil(t, second.Images)
	assert.Empty(t, second.Images)
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"missing price": "title,price,sku\nShoe,,S-1\n",
		"bad price":     "title,price,sku\nShoe,abc,S-1\n",
		"bad stock":     "title,price,sku,sizes\nShoe,10,S-1,UK7:many\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCSVImporter(strings.NewReader(data), &stubProductRepo{}, zerolog.Nop()).Run(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCSVImporter_MissingSKUColumn(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("title,price\nShoe,10\n"), &stubProductRepo{}, zerolog.Nop()).Run(context.Background())
	assert.Error(t, err)
}

func TestCSVImporter_StopsOnWriteError(t *testing.T) {
	repo := &stubProductRepo{err: errors.New("db down")}
	count, err := NewCSVImporter(strings.NewReader("title,price,sku\nShoe,10,S-1\n"), repo, zerolog.Nop()).Run(context.Background())
	assert.Error(t, err)
	assert.Zero(t, count)
}
