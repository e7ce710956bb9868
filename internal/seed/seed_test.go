package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type recordingWriter struct {
	skus   []string
	failOn string
}

func (w *recordingWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.SKU == w.failOn {
		return nil, errors.New("boom")
	}
	w.skus = append(w.skus, p.SKU)
	return &p, nil
}

func TestApply_UpsertsDemoCatalog(t *testing.T) {
	w := &recordingWriter{}
	n, err := Apply(context.Background(), w, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Len(t, w.skus, 8)
}

func TestApply_StopsOnError(t *testing.T) {
	first := &recordingWriter{}
	_, err := Apply(context.Background(), first, zerolog.Nop())
	require.NoError(t, err)

	w := &recordingWriter{failOn: first.skus[2]}
	_, err = Apply(context.Background(), w, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), first.skus[2])
	assert.Len(t, w.skus, 2)
}
