package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with expiration. Backed by Redis in
// deployments; the in-memory store stands in when Redis is disabled.
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
