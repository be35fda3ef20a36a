package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

// Service is the project-file surface the API handlers depend on.
type Service interface {
	ListProjects(ctx context.Context) ([]string, error)
	ListFiles(ctx context.Context, project string) ([]graph.ConfigFile, error)
	ReadFile(ctx context.Context, project, name string) (string, error)
	WriteFile(ctx context.Context, project, name, text string) error
	DeleteFile(ctx context.Context, project, name string) error
	RenameFile(ctx context.Context, project, oldName, newName string) error
	RootFilename() string
}

var projectIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Manager maps project ids onto subdirectories of a base directory and
// implements Service by opening a Store per call.
type Manager struct {
	baseDir      string
	rootFilename string
}

// NewManager creates the base directory if needed.
func NewManager(baseDir, rootFilename string) (*Manager, error) {
	if rootFilename == "" {
		rootFilename = graph.DefaultRootFilename
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create projects dir: %w", err)
	}
	return &Manager{baseDir: baseDir, rootFilename: rootFilename}, nil
}

// RootFilename returns the protected entry-point filename shared by all
// projects under this manager.
func (m *Manager) RootFilename() string { return m.rootFilename }

// Open returns the store for one project, creating its directory.
func (m *Manager) Open(project string) (*Store, error) {
	if !projectIDPattern.MatchString(project) {
		return nil, fmt.Errorf("%w: project id %q", ErrInvalidFilename, project)
	}
	return NewStore(filepath.Join(m.baseDir, project), m.rootFilename)
}

// ListProjects returns the known project ids, sorted.
func (m *Manager) ListProjects(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && projectIDPattern.MatchString(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Manager) ListFiles(ctx context.Context, project string) ([]graph.ConfigFile, error) {
	store, err := m.Open(project)
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

func (m *Manager) ReadFile(ctx context.Context, project, name string) (string, error) {
	store, err := m.Open(project)
	if err != nil {
		return "", err
	}
	return store.Read(ctx, name)
}

func (m *Manager) WriteFile(ctx context.Context, project, name, text string) error {
	store, err := m.Open(project)
	if err != nil {
		return err
	}
	return store.Write(ctx, name, text)
}

func (m *Manager) DeleteFile(ctx context.Context, project, name string) error {
	store, err := m.Open(project)
	if err != nil {
		return err
	}
	return store.Delete(ctx, name)
}

func (m *Manager) RenameFile(ctx context.Context, project, oldName, newName string) error {
	store, err := m.Open(project)
	if err != nil {
		return err
	}
	return store.Rename(ctx, oldName, newName)
}
