// Package bundle models the files a build emits before they are written.
package bundle

import (
	"path"
	"strings"
)

type Kind int

const (
	// Asset is a file emitted as-is (HTML, CSS, copied files).
	Asset Kind = iota
	// Chunk is a script produced by the bundler.
	Chunk
)

func (k Kind) String() string {
	if k == Chunk {
		return "chunk"
	}
	return "asset"
}

// File is one output. Name is slash separated and relative to the output
// directory.
type File struct {
	Name     string
	Kind     Kind
	Contents []byte
}

func (f *File) IsHTML() bool {
	ext := strings.ToLower(path.Ext(f.Name))
	return f.Kind == Asset && (ext == ".html" || ext == ".htm")
}

// Bundle is an ordered set of output files keyed by name.
type Bundle struct {
	files []*File
}

func New() *Bundle {
	return &Bundle{}
}

// Add inserts f, replacing a file with the same name in place.
func (b *Bundle) Add(f *File) {
	for i, existing := range b.files {
		if existing.Name == f.Name {
			b.files[i] = f
			return
		}
	}
	b.files = append(b.files, f)
}

func (b *Bundle) Get(name string) (*File, bool) {
	for _, f := range b.files {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Delete removes the named file and reports whether it existed.
func (b *Bundle) Delete(name string) bool {
	for i, f := range b.files {
		if f.Name == name {
			b.files = append(b.files[:i], b.files[i+1:]...)
			return true
		}
	}
	return false
}

// Files returns the files in insertion order.
func (b *Bundle) Files() []*File {
	return append([]*File(nil), b.files...)
}

func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.files))
	for _, f := range b.files {
		names = append(names, f.Name)
	}
	return names
}
