// Package kv stores opaque values under string keys. It backs the till's persisted settings.
package kv

import "context"

type Repository interface {
	// Get returns domain.ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the whole value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}
