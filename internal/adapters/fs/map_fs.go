package fs

import (
	"errors"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MapFileSystem keeps files in memory, keyed by cleaned path. Directories
// are implicit.
type MapFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMapFileSystem(files map[string]string) *MapFileSystem {
	m := &MapFileSystem{files: make(map[string][]byte, len(files))}
	for p, data := range files {
		m.files[filepath.Clean(p)] = []byte(data)
	}
	return m
}

func (m *MapFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: iofs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MapFileSystem) FileExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MapFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = append([]byte(nil), data...)
	return nil
}

func (m *MapFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return nil
}

func (m *MapFileSystem) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir := filepath.Clean(path)
	for p := range m.files {
		if p == dir || strings.HasPrefix(p, dir+string(filepath.Separator)) {
			delete(m.files, p)
		}
	}
	return nil
}

func (m *MapFileSystem) DirEmpty(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir := filepath.Clean(path)
	for p := range m.files {
		if p == dir {
			return false, &iofs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
		}
		if strings.HasPrefix(p, dir+string(filepath.Separator)) {
			return false, nil
		}
	}
	return true, nil
}

// Paths lists every file, sorted.
func (m *MapFileSystem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
