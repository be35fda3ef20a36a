// Package project is the disk-backed file store behind the editor: one
// directory per project, one YAML file per agent. It guards the structural
// invariants the core relies on (unique filenames, protected root file) but
// leaves content validation to the validate package.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

var (
	// ErrRootFileProtected is returned for attempts to delete or rename
	// the project's root file.
	ErrRootFileProtected = errors.New("root file may not be deleted or renamed")

	// ErrInvalidFilename is returned for names that are not plain YAML
	// filenames.
	ErrInvalidFilename = errors.New("invalid config filename")

	// ErrNotFound is returned when a named file does not exist.
	ErrNotFound = errors.New("config file not found")
)

// Store manages the files of a single project directory.
type Store struct {
	dir          string
	rootFilename string
}

// NewStore opens a project directory, creating it if necessary.
func NewStore(dir, rootFilename string) (*Store, error) {
	if rootFilename == "" {
		rootFilename = graph.DefaultRootFilename
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project dir: %w", err)
	}
	return &Store{dir: dir, rootFilename: rootFilename}, nil
}

// RootFilename returns the protected entry-point filename.
func (s *Store) RootFilename() string { return s.rootFilename }

// Dir returns the project directory.
func (s *Store) Dir() string { return s.dir }

func validFilename(name string) bool {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

// List returns every YAML file in the project, sorted by filename.
func (s *Store) List(_ context.Context) ([]graph.ConfigFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read project dir: %w", err)
	}
	var files []graph.ConfigFile
	for _, e := range entries {
		if e.IsDir() || !validFilename(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		files = append(files, graph.ConfigFile{Filename: e.Name(), YAMLText: string(data)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })
	return files, nil
}

// Read returns one file's YAML text.
func (s *Store) Read(_ context.Context, name string) (string, error) {
	if !validFilename(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// Write creates or replaces one file.
func (s *Store) Write(_ context.Context, name, text string) error {
	if !validFilename(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes one file. The root file is protected.
func (s *Store) Delete(_ context.Context, name string) error {
	if !validFilename(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if name == s.rootFilename {
		return ErrRootFileProtected
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

// Rename moves a file to a new name and rewrites every config_path
// reference to it across the sibling files.
//
// The rewrite is a read-all, patch-matches, write-each sequence with no
// cross-file transaction; a crash mid-sequence can leave some siblings
// updated and others stale. The validator catches that state on the next
// pass.
func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	if !validFilename(oldName) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, oldName)
	}
	if !validFilename(newName) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, newName)
	}
	if oldName == s.rootFilename {
		return ErrRootFileProtected
	}
	if _, err := os.Stat(filepath.Join(s.dir, oldName)); os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}
	if _, err := os.Stat(filepath.Join(s.dir, newName)); err == nil {
		return fmt.Errorf("%w: %q already exists", ErrInvalidFilename, newName)
	}

	if err := os.Rename(filepath.Join(s.dir, oldName), filepath.Join(s.dir, newName)); err != nil {
		return fmt.Errorf("failed to rename %s: %w", oldName, err)
	}

	files, err := s.List(ctx)
	if err != nil {
		return err
	}
	pattern := referencePattern(oldName)
	for _, f := range files {
		patched := pattern.ReplaceAllString(f.YAMLText, "${1}./"+newName+"${2}")
		if patched == f.YAMLText {
			continue
		}
		if err := s.Write(ctx, f.Filename, patched); err != nil {
			return err
		}
	}
	return nil
}

// referencePattern matches a config_path value pointing at the given file,
// with or without the leading "./" and with optional quoting. The rewrite
// canonicalizes to the "./" form.
func referencePattern(filename string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?m)(config_path:\s*["']?)(?:\./)?` + regexp.QuoteMeta(filename) + `(["']?)\s*$`,
	)
}
