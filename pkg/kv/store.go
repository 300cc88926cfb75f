// Package kv provides the durable snapshot storage used by the state
// containers. Each store state is serialized to a single value under a
// well-known key, read once at startup and overwritten on every mutation.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the snapshot repository contract. Implementations must treat
// values as opaque bytes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
