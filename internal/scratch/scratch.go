// Package scratch provides ephemeral, isolated working directories for
// test cases that perform file I/O.
//
// Each area is uniquely named, so two cases created from the same label
// never collide even when run back-to-back. The area owns the process
// working directory for its lifetime: New chdirs into the fresh directory
// and Close restores the previous one and removes the tree, on success and
// failure alike.
package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EnvError marks an infrastructure failure in scratch-area setup or
// teardown. Runners use it to mark a case errored rather than failed, so
// disk trouble is never confused with an assertion failure.
type EnvError struct {
	Op  string // "create", "chdir", "restore", "remove"
	Err error
}

// Error implements the error interface.
func (e *EnvError) Error() string {
	return fmt.Sprintf("scratch %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvError) Unwrap() error { return e.Err }

// IsEnvError reports whether err is a scratch infrastructure failure.
func IsEnvError(err error) bool {
	var ee *EnvError
	return errors.As(err, &ee)
}

// Area is a live scratch directory. The process working directory points
// inside it until Close.
type Area struct {
	label  string
	dir    string
	prev   string
	closed bool
}

// New creates a fresh scratch directory under root (os.TempDir when root is
// empty), records the current working directory, and chdirs into the new
// one. The label is for diagnostics only and need not be unique; a random
// suffix guarantees isolation.
func New(label, root string) (*Area, error) {
	if root == "" {
		root = os.TempDir()
	}

	prev, err := os.Getwd()
	if err != nil {
		return nil, &EnvError{Op: "create", Err: err}
	}

	dir := filepath.Join(root, sanitize(label)+"-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &EnvError{Op: "create", Err: err}
	}

	if err := os.Chdir(dir); err != nil {
		// Clean up the directory we just made before reporting.
		os.RemoveAll(dir)
		return nil, &EnvError{Op: "chdir", Err: err}
	}

	return &Area{label: label, dir: dir, prev: prev}, nil
}

// Label returns the diagnostic label the area was created with.
func (a *Area) Label() string { return a.label }

// Dir returns the absolute path of the scratch directory.
func (a *Area) Dir() string { return a.dir }

// Close restores the previous working directory and removes the scratch
// tree. It is idempotent. The directory is removed even when restoring the
// working directory fails, so no residue survives either way.
func (a *Area) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var restoreErr error
	if err := os.Chdir(a.prev); err != nil {
		restoreErr = &EnvError{Op: "restore", Err: err}
	}

	if err := os.RemoveAll(a.dir); err != nil {
		if restoreErr != nil {
			return restoreErr
		}
		return &EnvError{Op: "remove", Err: err}
	}

	return restoreErr
}

// sanitize maps a free-form label to a filesystem-safe directory prefix.
func sanitize(label string) string {
	if label == "" {
		return "scratch"
	}
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, label)
	return mapped
}
