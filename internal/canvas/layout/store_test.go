package layout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, "proj")
	require.NoError(t, err)
	assert.Empty(t, got, "missing project yields empty map")

	positions := map[string]graph.Position{
		"root_agent.yaml": {X: 100, Y: 200},
		"helper.yaml":     {X: 420, Y: 200},
	}
	require.NoError(t, s.Set(ctx, "proj", positions))

	got, err = s.Get(ctx, "proj")
	require.NoError(t, err)
	assert.Equal(t, positions, got)

	// Mutating the caller's map after Set must not leak into the store.
	positions["root_agent.yaml"] = graph.Position{X: 0, Y: 0}
	got, err = s.Get(ctx, "proj")
	require.NoError(t, err)
	assert.Equal(t, graph.Position{X: 100, Y: 200}, got["root_agent.yaml"])
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	got, err := s.Get(ctx, "proj")
	require.NoError(t, err)
	assert.Empty(t, got)

	positions := map[string]graph.Position{"root_agent.yaml": {X: 12.5, Y: 40}}
	require.NoError(t, s.Set(ctx, "proj", positions))

	got, err = s.Get(ctx, "proj")
	require.NoError(t, err)
	assert.Equal(t, positions, got)

	data, err := os.ReadFile(filepath.Join(dir, "proj.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "root_agent.yaml")
}

func TestFileStoreCorruptFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proj.json"), []byte("not json"), 0o644))

	_, err = s.Get(context.Background(), "proj")
	assert.Error(t, err)
}
