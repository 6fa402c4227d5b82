// Package adapter contains filesystem and persistence adapters used by the distill workflow.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "distill.dev/pkg/distill/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning and cutting projects. It hides direct `os` access so
// the workflow logic can be tested against fakes.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// CopyFile copies src to dst, creating parent directories and preserving
	// the source mode. It returns the number of bytes written.
	CopyFile(src, dst m.Path) (int64, error)

	// WriteFile writes content to a file, creating parent directories.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// ErrSkipDir can be returned from a FilepathWalkFunc to skip a directory.
var ErrSkipDir = filepath.SkipDir

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
// A symlinked root is resolved and walked, but paths are still reported
// under root as given.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)
	walkRoot := rootStr

	if resolved, err := filepath.EvalSymlinks(rootStr); err == nil {
		walkRoot = resolved
	}

	return filepath.Walk(walkRoot, func(path string, info os.FileInfo, err error) error {
		isRoot := path == walkRoot
		path = underRoot(rootStr, walkRoot, path)

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && !isRoot {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// underRoot maps a path below walkRoot back below root.
func underRoot(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}

	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}

	if rel == "." {
		return root
	}

	return filepath.Join(root, rel)
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path comes from walking the user-selected root
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// CopyFile copies a single file.
func (a *LocalSourceFSAdapter) CopyFile(src, dst m.Path) (int64, error) {
	info, err := os.Stat(string(src))
	if err != nil {
		return 0, err
	}

	if info.IsDir() {
		return 0, fmt.Errorf("copy %s: %w", src, fs.ErrInvalid)
	}

	// #nosec G304 - src is a planned project file, not user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return 0, err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return 0, err
	}

	// #nosec G304 - dst is inside the configured output directory
	destFile, err := os.Create(string(dst))
	if err != nil {
		return 0, err
	}

	written, copyErr := io.Copy(destFile, sourceFile)
	closeErr := destFile.Close()

	if err := errors.Join(copyErr, closeErr); err != nil {
		return written, err
	}

	return written, os.Chmod(string(dst), info.Mode().Perm())
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
