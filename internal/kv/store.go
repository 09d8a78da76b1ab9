package kv

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrStoreClosed = errors.New("kv store is closed")
)

// Store is a durable string key-value namespace shared by the whole process.
// Writes are last-writer-wins.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close closes the store.
	Close() error
}
