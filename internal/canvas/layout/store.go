// Package layout persists visual node positions per project. Positions are
// a side channel keyed by project id — they never affect YAML content and
// the YAML never depends on them.
package layout

import (
	"context"
	"sync"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

// Store is the injected persistence interface for canvas positions. A
// missing project yields an empty map, not an error.
type Store interface {
	Get(ctx context.Context, projectID string) (map[string]graph.Position, error)
	Set(ctx context.Context, projectID string, positions map[string]graph.Position) error
}

// MemoryStore keeps layouts in process memory. Used by tests and as the
// fallback backend.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]map[string]graph.Position
}

// NewMemoryStore creates an empty in-memory layout store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: map[string]map[string]graph.Position{}}
}

func (s *MemoryStore) Get(_ context.Context, projectID string) (map[string]graph.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]graph.Position{}
	for k, v := range s.layouts[projectID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, projectID string, positions map[string]graph.Position) error {
	copied := make(map[string]graph.Position, len(positions))
	for k, v := range positions {
		copied[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[projectID] = copied
	return nil
}
