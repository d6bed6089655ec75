package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
)

func sampleLayout() document.Layout {
	return document.Layout{
		Name:   "sample",
		Width:  60,
		Height: 10,
		Lines:  []document.LineInfo{{Width: 60, Height: 10, Boxes: []string{"a", "b"}}},
		Boxes: []document.PlacedBox{
			{ID: "a", Width: 30, Height: 10},
			{ID: "b", X: 30, Width: 30, Height: 10},
		},
	}
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	id, err := s.Save(ctx, sampleLayout())
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}

	got, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(sampleLayout(), got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeLayoutNotFound)
	}
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Save(ctx, sampleLayout())
			if err != nil {
				t.Error(err)
			}
			ids[i] = id
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if s.Len() != n {
		t.Errorf("Len() = %d, want %d", s.Len(), n)
	}
}
