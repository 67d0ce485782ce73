package cache

import (
	"context"
	"time"
)

// Noop never stores anything. Every read is a miss, so callers always hit
// the underlying store. Used when caching is disabled; results must be
// identical to a cached run, only slower.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(ctx context.Context, key string, dest any) (bool, error) { return false, nil }

func (Noop) Set(ctx context.Context, key string, value any, ttl time.Duration) error { return nil }

func (Noop) Delete(ctx context.Context, keys ...string) error { return nil }

func (Noop) Ping(ctx context.Context) error { return nil }
