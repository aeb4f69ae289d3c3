// Package kv holds the durable key-value storage used for credentials,
// notifications and content counters.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that were never set or were deleted.
var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
