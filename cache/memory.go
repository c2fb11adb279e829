package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process KeyCache holding a single key slot, scoped
// to the client that owns it.
type Memory struct {
	mu        sync.RWMutex
	key       []byte
	fetchedAt time.Time
}

// NewMemory creates an empty in-process key cache.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the cached key, or ok=false when the slot is empty.
func (m *Memory) Get(_ context.Context) ([]byte, time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.key == nil {
		return nil, time.Time{}, false, nil
	}
	// Hand out a copy so a caller cannot mutate the cached key.
	return append([]byte(nil), m.key...), m.fetchedAt, true, nil
}

// Set stores the key and its fetch time.
func (m *Memory) Set(_ context.Context, key []byte, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.key = key
	m.fetchedAt = fetchedAt
	return nil
}

// Verify Memory implements KeyCache
var _ KeyCache = (*Memory)(nil)
