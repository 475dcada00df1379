package cache

import (
	"context"
	"time"
)

// RetryingCache decorates a backend with [RetryWithBackoff] on every
// operation. Only errors the backend marked with [Retryable] trigger a
// retry; the file and null backends never do, so the decorator is only
// worth applying to Redis.
type RetryingCache struct {
	inner Cache
}

// NewRetryingCache wraps inner with retry-on-transient-failure semantics.
func NewRetryingCache(inner Cache) Cache {
	return &RetryingCache{inner: inner}
}

// Get retrieves a value, retrying transient backend failures.
func (c *RetryingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = c.inner.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value, retrying transient backend failures.
func (c *RetryingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return c.inner.Set(ctx, key, data, ttl)
	})
}

// Delete removes a value, retrying transient backend failures.
func (c *RetryingCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return c.inner.Delete(ctx, key)
	})
}

// Close closes the underlying backend.
func (c *RetryingCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*RetryingCache)(nil)
