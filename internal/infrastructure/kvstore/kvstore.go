// Package kvstore provides the byte-level key-value backends the persistence
// gateway is built on.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound reports a missing key. Callers substitute their default.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is the minimal contract every backend satisfies.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Notifier is implemented by backends that can observe key changes made by
// other processes. Delivery is best-effort and unordered.
type Notifier interface {
	Notifications() <-chan string
}
