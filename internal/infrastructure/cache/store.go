package cache

import (
	"context"
	"time"
)

// Store is a minimal key-value cache with expiration. Two implementations
// exist: a Redis-backed store for the API service and an in-memory store
// for the CLI and tests.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
