package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic checking via errors.Is().
var (
	// ErrBrokenReference indicates a config_path pointing at a file that
	// does not exist in the project.
	ErrBrokenReference = errors.New("broken reference")

	// ErrCircularDependency indicates a sub-agent chain that revisits one
	// of its own ancestors.
	ErrCircularDependency = errors.New("circular dependency")
)

// BrokenReference is one dangling config_path, keyed by the file that
// contains it.
type BrokenReference struct {
	File string `json:"file"`
	Path string `json:"path"`
}

// BrokenReferenceError wraps a set of dangling references as an error.
type BrokenReferenceError struct {
	Refs []BrokenReference
}

func (e *BrokenReferenceError) Error() string {
	if e == nil || len(e.Refs) == 0 {
		return ErrBrokenReference.Error()
	}
	parts := make([]string, 0, len(e.Refs))
	for _, r := range e.Refs {
		parts = append(parts, fmt.Sprintf("%s -> %s", r.File, r.Path))
	}
	return fmt.Sprintf("%s: %s", ErrBrokenReference.Error(), strings.Join(parts, ", "))
}

func (e *BrokenReferenceError) Unwrap() error { return ErrBrokenReference }

// CircularDependencyError carries the full chain, ending with the filename
// that was revisited.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	if e == nil || len(e.Chain) == 0 {
		return ErrCircularDependency.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCircularDependency.Error(), strings.Join(e.Chain, " -> "))
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }
