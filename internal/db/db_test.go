package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsMalformedDSN(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://user@localhost:notaport/storefront")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dsn")
}

func TestConnect_Pings(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping integration test")
	}
	pool, err := Connect(context.Background(), dsn)
	require.NoError(t, err)
	defer pool.Close()
	assert.NoError(t, pool.Ping(context.Background()))
}
