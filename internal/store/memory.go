// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Live rounds are ephemeral by design: aggregate results are written to
// SQLite when a round finishes, but the round itself only needs to survive
// between guesses of one session.
//
// Characteristics:
//   - Stores *Round objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown round IDs.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown round IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines the persistence interface for live rounds.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, r *Round) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*Round, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex // guards rounds map
	rounds map[string]*Round
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[string]*Round)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r *Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}
