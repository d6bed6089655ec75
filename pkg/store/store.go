// Package store persists computed layouts so they can be fetched again by
// id, as the API server does for POST /v1/layouts.
//
// Two implementations are provided:
//   - [MemoryStore]: process-local, used by tests and by the server when no
//     database is configured
//   - [MongoStore]: one MongoDB document per layout
//
// Ids are random UUIDs. Loading an unknown id returns an error with code
// LAYOUT_NOT_FOUND.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
)

// Store saves and loads layouts by id.
type Store interface {
	// Save stores a layout and returns its new id.
	Save(ctx context.Context, l document.Layout) (string, error)

	// Load returns the layout stored under id.
	Load(ctx context.Context, id string) (document.Layout, error)

	// Close releases any resources held by the store.
	Close() error
}

func newID() string { return uuid.NewString() }

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id)
}

// MemoryStore keeps layouts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]storedLayout
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]storedLayout)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, l document.Layout) (string, error) {
	id := newID()
	s.mu.Lock()
	s.layouts[id] = storedLayout{ID: id, CreatedAt: time.Now().UTC(), Layout: l}
	s.mu.Unlock()
	return id, nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, id string) (document.Layout, error) {
	s.mu.RLock()
	stored, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return document.Layout{}, notFound(id)
	}
	return stored.Layout, nil
}

// Len returns the number of stored layouts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layouts)
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
