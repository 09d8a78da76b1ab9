package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Failures can be injected for tests.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	writes int
	closed bool
	GetErr error
	SetErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed
	}
	if m.GetErr != nil {
		return "", false, m.GetErr
	}

	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if m.SetErr != nil {
		return m.SetErr
	}

	m.data[key] = value
	m.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Close closes the store.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
