// Package adapter contains filesystem, parser and module-resolution adapters
// for the shroud CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "shroud.dev/pkg/shroud/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the workflow relies on,
// so the domain layer can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFileAtomic writes content to a temporary file next to path and
	// renames it into place, so readers never observe a partial file.
	WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Exists reports whether path names an existing regular file.
	Exists(path m.Path) bool

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFileAtomic writes content through a temporary sibling file.
func (a *LocalSourceFSAdapter) WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error {
	target := string(path)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		return err
	}

	committed = true

	return nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Exists reports whether path is an existing regular file.
func (a *LocalSourceFSAdapter) Exists(path m.Path) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// MkdirAll creates a directory tree.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
