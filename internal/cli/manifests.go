package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// findManifestFiles walks dir for YAML manifests, optionally filtered by a
// glob pattern matched against the file base name without extension.
func findManifestFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// requireDir returns an ExitCommandError when dir does not exist.
func requireDir(dir, what string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s directory not found: %s", what, dir))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot access %s directory", what), err)
	}
	if !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("not a directory: %s", dir))
	}
	return nil
}
