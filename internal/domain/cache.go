package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error raised by a Cache implementation.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss reports that a key is absent or expired.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the string key/value store that live quiz sessions are parked in
// between requests. Entries written with a positive expiration vanish after it.
type Cache interface {
	// Get returns ErrCacheMiss when key holds nothing.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
