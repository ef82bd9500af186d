// Package fs is the filesystem port of the build and its implementations.
package fs

import (
	iofs "io/fs"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) bool
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
	RemoveAll(path string) error
	// DirEmpty reports whether path holds no entries. A missing
	// directory is empty.
	DirEmpty(path string) (bool, error)
}
