package simdata

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hagness/depwarn/internal/deprec"
)

// File is an in-memory view of a keyword file: every keyword record loaded
// in order, with lookup by name.
type File struct {
	path     string
	keywords []*Keyword
}

// Open loads a keyword file by bare name, resolved against the current
// working directory.
//
// Flagged: bare-name open is deprecated since 2.0; callers should pass an
// explicit path to OpenPath. Under an escalating policy the call aborts
// before touching the filesystem.
func Open(name string) (*File, error) {
	if err := deprec.Emit(deprec.Notice{
		API:      "simdata.Open",
		Message:  "open by bare keyword file name is deprecated, use OpenPath with an explicit path",
		Since:    "2.0",
		Category: deprec.Deprecation,
	}); err != nil {
		return nil, err
	}
	return OpenPath(name)
}

// OpenPath loads every keyword record from the file at path.
func OpenPath(path string) (*File, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f := &File{path: path}
	for {
		kw, err := ReadKeyword(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		f.keywords = append(f.keywords, kw)
	}
	return f, nil
}

// Name returns the base name of the backing file.
//
// Flagged: the name accessor is deprecated since 2.0 in favour of Path.
func (f *File) Name() (string, error) {
	if err := deprec.Emit(deprec.Notice{
		API:      "simdata.File.Name",
		Message:  "the name accessor is deprecated, use Path",
		Since:    "2.0",
		Category: deprec.Deprecation,
	}); err != nil {
		return "", err
	}
	return filepath.Base(f.path), nil
}

// Path returns the path the file was loaded from.
func (f *File) Path() string { return f.path }

// NumKeywords returns the number of loaded keyword records.
func (f *File) NumKeywords() int { return len(f.keywords) }

// Keyword returns the first keyword with the given name.
func (f *File) Keyword(name string) (*Keyword, error) {
	for _, kw := range f.keywords {
		if kw.name == name {
			return kw, nil
		}
	}
	return nil, fmt.Errorf("keyword %s not found in %s", name, f.path)
}
