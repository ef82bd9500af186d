// Package session holds the component state accumulated over one build.
//
// A Session is created once per build (or once per watch process),
// mutated as modules are transformed and read once at finalize. It is not
// safe for concurrent use; hosts that transform modules in parallel
// record into a Batch and commit it after every transform has finished.
package session

import (
	"github.com/boredom-js/boredom-build/internal/component"
)

type Session struct {
	order        []string
	components   map[string]component.Record
	dependencies map[string][]string
}

func New() *Session {
	return &Session{
		components:   make(map[string]component.Record),
		dependencies: make(map[string][]string),
	}
}

// Put stores the record for id. An id that is already present keeps its
// position in the insertion order.
func (s *Session) Put(id string, rec component.Record) {
	if _, ok := s.components[id]; !ok {
		s.order = append(s.order, id)
	}
	rec = rec.Clone()
	s.components[id] = rec
	s.dependencies[id] = rec.Metadata.Dependencies
}

// Delete drops every entry owned by id.
func (s *Session) Delete(id string) {
	if _, ok := s.components[id]; !ok {
		return
	}
	delete(s.components, id)
	delete(s.dependencies, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Apply stores or deletes the entry for the analysed module. Anything
// that did not produce a record removes the previous one.
func (s *Session) Apply(a component.Analysis) {
	if a.Record == nil {
		s.Delete(a.ID)
		return
	}
	s.Put(a.ID, *a.Record)
}

// IDs returns the module ids in insertion order.
func (s *Session) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Session) Len() int {
	return len(s.order)
}

func (s *Session) Component(id string) (component.Record, bool) {
	rec, ok := s.components[id]
	if !ok {
		return component.Record{}, false
	}
	return rec.Clone(), true
}

func (s *Session) DependencyNames(id string) []string {
	return append([]string(nil), s.dependencies[id]...)
}

