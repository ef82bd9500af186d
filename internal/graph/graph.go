// Package graph orders components so that dependencies come first.
//
// The graph is never stored: an edge A->B exists when A lists B's
// metadata name in its dependencies, and names are resolved against the
// session each time the order is computed.
package graph

import (
	"github.com/boredom-js/boredom-build/internal/component"
)

// Source is the read side of the build session.
type Source interface {
	IDs() []string
	Component(id string) (component.Record, bool)
	DependencyNames(id string) []string
}

type Entry struct {
	ID     string
	Record component.Record
}

// resolver maps a dependency name to the first module id, in insertion
// order, whose component carries that name.
type resolver struct {
	ids     []string
	byName  map[string]string
	records map[string]component.Record
}

func newResolver(src Source) *resolver {
	r := &resolver{
		ids:     src.IDs(),
		byName:  make(map[string]string),
		records: make(map[string]component.Record),
	}
	for _, id := range r.ids {
		rec, ok := src.Component(id)
		if !ok {
			continue
		}
		r.records[id] = rec
		if _, taken := r.byName[rec.Metadata.Name]; !taken {
			r.byName[rec.Metadata.Name] = id
		}
	}
	return r
}

func (r *resolver) resolve(name string) (string, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Sort returns every component of src in dependency order using a
// depth-first post-order walk over the ids in insertion order. Unresolved
// names are skipped. A module is marked visited before its dependencies
// are walked, so cycles terminate and every module appears exactly once.
func Sort(src Source) []Entry {
	r := newResolver(src)
	visited := make(map[string]bool, len(r.ids))
	out := make([]Entry, 0, len(r.records))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, name := range src.DependencyNames(id) {
			if dep, ok := r.resolve(name); ok {
				visit(dep)
			}
		}
		out = append(out, Entry{ID: id, Record: r.records[id]})
	}

	for _, id := range r.ids {
		if _, ok := r.records[id]; ok {
			visit(id)
		}
	}
	return out
}
