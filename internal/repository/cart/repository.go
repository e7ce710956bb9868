package cart

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Get when nothing is stored under the key.
var ErrEmpty = errors.New("slot empty")

// Repository is a durable key-value slot for serialized cart state.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
