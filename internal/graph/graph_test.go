package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/graph"
	"github.com/boredom-js/boredom-build/internal/session"
)

type node struct {
	id   string
	name string
	deps []string
}

func build(nodes ...node) *session.Session {
	s := session.New()
	for _, n := range nodes {
		s.Put(n.id, component.Record{Metadata: component.Metadata{
			Name:         n.name,
			Dependencies: n.deps,
			Props:        []string{},
			Events:       []string{},
		}})
	}
	return s
}

func names(entries []graph.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record.Metadata.Name)
	}
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

func TestSortDependencyFirst(t *testing.T) {
	a := node{"a.js", "a", []string{"b"}}
	b := node{"b.js", "b", nil}

	for _, order := range [][]node{{a, b}, {b, a}} {
		got := names(graph.Sort(build(order...)))
		assert.Equal(t, []string{"b", "a"}, got)
	}
}

func TestSortKeepsInsertionOrderOtherwise(t *testing.T) {
	got := graph.Sort(build(
		node{"x.js", "x", nil},
		node{"y.js", "y", nil},
		node{"z.js", "z", []string{"missing"}},
	))
	assert.Equal(t, []string{"x", "y", "z"}, names(got))
	assert.Equal(t, "x.js", got[0].ID)
}

func TestSortDiamond(t *testing.T) {
	got := names(graph.Sort(build(
		node{"app.js", "app", []string{"left", "right"}},
		node{"left.js", "left", []string{"base"}},
		node{"right.js", "right", []string{"base"}},
		node{"base.js", "base", nil},
	)))
	assert.Equal(t, []string{"base", "left", "right", "app"}, got)
}

func TestSortCycleTerminates(t *testing.T) {
	a := node{"a.js", "a", []string{"b"}}
	b := node{"b.js", "b", []string{"c"}}
	c := node{"c.js", "c", []string{"a"}}

	perms := [][]node{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	for _, perm := range perms {
		got := names(graph.Sort(build(perm...)))
		assert.ElementsMatch(t, []string{"a", "b", "c"}, got)
		assert.Len(t, got, 3)
	}
}

func TestSortDuplicateNamesResolveToFirst(t *testing.T) {
	got := graph.Sort(build(
		node{"app.js", "app", []string{"dup"}},
		node{"one.js", "dup", nil},
		node{"two.js", "dup", nil},
	))
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	require.Len(t, ids, 3)
	assert.Less(t, indexOf(ids, "one.js"), indexOf(ids, "app.js"))
}

func TestCheck(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		r := graph.Check(build(node{"a.js", "a", []string{"b"}}, node{"b.js", "b", nil}))
		assert.True(t, r.Empty())
		assert.Empty(t, r.Messages())
	})

	t.Run("unresolved", func(t *testing.T) {
		r := graph.Check(build(node{"a.js", "a", []string{"ghost"}}))
		assert.Equal(t, []graph.Unresolved{{ID: "a.js", Name: "ghost"}}, r.Unresolved)
		assert.Equal(t, []string{`a.js depends on unknown component "ghost"`}, r.Messages())
	})

	t.Run("cycle", func(t *testing.T) {
		r := graph.Check(build(
			node{"a.js", "a", []string{"b"}},
			node{"b.js", "b", []string{"c"}},
			node{"c.js", "c", []string{"a"}},
		))
		require.Len(t, r.Cycles, 1)
		assert.Equal(t, []string{"a", "b", "c", "a"}, r.Cycles[0])
		assert.Equal(t, []string{"dependency cycle: a -> b -> c -> a"}, r.Messages())
	})

	t.Run("self dependency", func(t *testing.T) {
		r := graph.Check(build(node{"a.js", "a", []string{"a"}}))
		assert.Equal(t, [][]string{{"a", "a"}}, r.Cycles)
	})
}
