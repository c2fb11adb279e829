// Package cache provides pluggable storage for the batch-callback
// signing key.
//
// The ModernMT API signs batch-translation callbacks with a key that
// clients fetch once and refresh when it goes stale. The default
// in-process store covers a single client instance; the Redis store
// shares the key between processes verifying callbacks for the same
// API key.
package cache

import (
	"context"
	"time"
)

// KeyCache stores the batch public key together with the time it was
// fetched. Implementations must be safe for concurrent use.
type KeyCache interface {
	// Get returns the cached key and its fetch time. ok is false when
	// no key is cached.
	Get(ctx context.Context) (key []byte, fetchedAt time.Time, ok bool, err error)

	// Set stores the key and its fetch time, replacing any previous
	// value.
	Set(ctx context.Context, key []byte, fetchedAt time.Time) error
}
