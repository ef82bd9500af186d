package session

import (
	"sort"
	"sync"

	"github.com/boredom-js/boredom-build/internal/component"
)

// Batch collects analyses produced by concurrent transforms. It is the
// only piece of build state workers touch; the Session itself is updated
// by Commit once the bundler is done.
type Batch struct {
	mu       sync.Mutex
	analyses map[string]component.Analysis
}

func NewBatch() *Batch {
	return &Batch{analyses: make(map[string]component.Analysis)}
}

// Record stores the analysis of one module, replacing an earlier one for
// the same id.
func (b *Batch) Record(a component.Analysis) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analyses[a.ID] = a
}

func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.analyses)
}

// Analyses returns the recorded analyses sorted by module id.
func (b *Batch) Analyses() []component.Analysis {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]string, 0, len(b.analyses))
	for id := range b.analyses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]component.Analysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.analyses[id])
	}
	return out
}

// Commit merges the batch into s in sorted id order, so the insertion
// order of new components does not depend on worker scheduling. When
// prune is set, entries of modules that were not transformed in this
// batch are deleted as well.
func (b *Batch) Commit(s *Session, prune bool) {
	analyses := b.Analyses()
	seen := make(map[string]struct{}, len(analyses))
	for _, a := range analyses {
		seen[a.ID] = struct{}{}
		s.Apply(a)
	}
	if !prune {
		return
	}
	for _, id := range s.IDs() {
		if _, ok := seen[id]; !ok {
			s.Delete(id)
		}
	}
}
