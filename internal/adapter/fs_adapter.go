// Package adapter contains the infrastructure adapters of the remediation engine.
package adapter

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/mender/internal/model"
)

// FileSystem abstracts the filesystem operations the domain layer relies on,
// so rewrite and backup logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type FileSystem interface {
	// Walk visits every regular file below root in lexical order.
	// Directories for which skip returns true are not descended into.
	Walk(root m.Path, skip func(dir m.Path) bool, fn WalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the file contents, keeping its permissions when it exists.
	WriteFile(path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// ReadDir lists the direct children of a directory, sorted by name.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// MkdirAll creates a directory and its parents.
	MkdirAll(path m.Path) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path m.Path) error

	// CopyFile copies a single file, creating parent directories as needed.
	CopyFile(src, dst m.Path) error

	// Move renames src to dst, falling back to copy and delete across devices.
	Move(src, dst m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path

	// Abs returns an absolute representation of path.
	Abs(path m.Path) (m.Path, error)
}

// WalkFunc is called for every regular file found by Walk.
type WalkFunc func(path m.Path, info os.FileInfo) error

// LocalFileSystem is the os-backed FileSystem.
type LocalFileSystem struct{}

// NewLocalFileSystem constructs a LocalFileSystem ready to be wired into the workflow.
func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Walk iterates over regular files under root. Symlinks and other special
// files are not reported.
func (a *LocalFileSystem) Walk(root m.Path, skip func(dir m.Path) bool, fn WalkFunc) error {
	rootStr := string(root)

	return filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != rootStr && skip != nil && skip(m.Path(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		return fn(m.Path(path), info)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalFileSystem) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - paths come from the analyzer report or the walked root
	return os.ReadFile(string(path))
}

// WriteFile writes content, preserving the mode of an existing file.
func (a *LocalFileSystem) WriteFile(path m.Path, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(string(path)); err == nil {
		mode = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, mode)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalFileSystem) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadDir lists a directory.
func (a *LocalFileSystem) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// MkdirAll creates a directory tree.
func (a *LocalFileSystem) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// RemoveAll removes a directory and all its contents.
func (a *LocalFileSystem) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// CopyFile copies a single file and its permission bits.
func (a *LocalFileSystem) CopyFile(src, dst m.Path) error {
	// #nosec G304 - src is an internal project or backup path
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal project or backup path
	destFile, err := os.OpenFile(string(dst), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode().Perm())
}

// Move renames src to dst.
func (a *LocalFileSystem) Move(src, dst m.Path) error {
	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	err := os.Rename(string(src), string(dst))
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if err := a.CopyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(string(src))
}

// RelPath returns the relative path from base to target.
func (a *LocalFileSystem) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalFileSystem) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// Abs resolves path against the working directory, expanding a leading ~.
func (a *LocalFileSystem) Abs(path m.Path) (m.Path, error) {
	p := string(path)

	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		p = filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(p, "~"), string(os.PathSeparator)))
	}

	if p == "" {
		p = "."
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}
