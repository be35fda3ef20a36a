package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

// FileStore persists one JSON layout file per project under a state
// directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create layout dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(projectID string) string {
	// Project ids come from directory names; flatten anything hostile.
	safe := strings.ReplaceAll(projectID, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileStore) Get(_ context.Context, projectID string) (map[string]graph.Position, error) {
	data, err := os.ReadFile(s.path(projectID))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]graph.Position{}, nil
		}
		return nil, fmt.Errorf("failed to read layout for %q: %w", projectID, err)
	}
	var positions map[string]graph.Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to decode layout for %q: %w", projectID, err)
	}
	if positions == nil {
		positions = map[string]graph.Position{}
	}
	return positions, nil
}

func (s *FileStore) Set(_ context.Context, projectID string, positions map[string]graph.Position) error {
	data, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout for %q: %w", projectID, err)
	}
	if err := os.WriteFile(s.path(projectID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout for %q: %w", projectID, err)
	}
	return nil
}
