package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache with lazy expiry
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	val []byte
	exp time.Time // zero means no expiry
}

// MemoryOption configures a Memory cache
type MemoryOption func(*Memory)

// WithNow sets the clock used for expiry
func WithNow(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory returns an empty Memory cache
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{entries: map[string]memEntry{}, now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Get returns a copy of the stored bytes or ErrMiss
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !e.exp.IsZero() && !m.now().Before(e.exp) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return append([]byte(nil), e.val...), nil
}

// Set stores a copy of val; a non-positive ttl never expires
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memEntry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.exp = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Delete removes key; missing keys are not an error
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len reports live entries, sweeping expired ones
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.entries {
		if !e.exp.IsZero() && !now.Before(e.exp) {
			delete(m.entries, k)
		}
	}
	return len(m.entries)
}
