// Package storage provides the single-blob key/value port the cart
// persists through. Every write is a full overwrite of the value at its
// key; there are no partial updates and the last writer wins.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal blob store. A nil Store means the execution context
// has no persistence capability; callers degrade to empty state.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
