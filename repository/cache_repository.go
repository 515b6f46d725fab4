package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized scenario results keyed by their inputs.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
