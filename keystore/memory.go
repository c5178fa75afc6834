package keystore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	expiresAt time.Time
}

// Memory implements Store with a mutex-guarded map. Suitable for tests and
// single-process deployments; keys do not survive a restart, which only means
// outstanding links stop working.
type Memory struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory creates an in-memory key store. If cleanupInterval is positive, a
// janitor goroutine evicts expired entries periodically; Close stops it.
// Expired entries are rejected on Consume either way, the janitor only bounds
// memory growth from never-redeemed links.
func NewMemory(cleanupInterval time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}

	return m
}

// Save stores a key under id for at most ttl.
func (m *Memory) Save(ctx context.Context, id, key string, ttl time.Duration) error {
	if id == "" {
		return ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{
		key:       key,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Consume returns the key stored under id and deletes it.
func (m *Memory) Consume(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return "", ErrNotFound
	}

	delete(m.entries, id)

	if time.Now().After(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.key, nil
}

// Close stops the janitor goroutine if one is running. Safe to call more
// than once.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
			close(m.done)
		}
	})
	return nil
}

func (m *Memory) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.deleteExpired()
		case <-m.done:
			return
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
		}
	}
}
