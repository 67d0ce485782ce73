// Package cache defines the expiring key-value contract the resource
// services cache through, plus the read-through helper they share.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the contract for an expiring key-value store.
// Implementations: Redis (internal/infrastructure/cache), Memory, Noop.
type Cache interface {
	// Get loads the value stored under key and unmarshals it into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete evicts the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Remember is the read-through primitive: return the cached value under key,
// or run fetch, store its result with ttl and return it.
//
// A fetch error (including not-found) propagates without touching the key,
// so negative results are never cached. Cache transport errors also
// propagate; this layer does not degrade to the store silently.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		return zero, fmt.Errorf("cache get %q: %w", key, err)
	}
	if found {
		return cached, nil
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if err := c.Set(ctx, key, fresh, ttl); err != nil {
		return zero, fmt.Errorf("cache set %q: %w", key, err)
	}
	return fresh, nil
}
