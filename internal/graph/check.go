package graph

import (
	"fmt"
	"strings"
)

// Unresolved is a dependency name no component in the session carries.
type Unresolved struct {
	ID   string
	Name string
}

// Report lists dependency problems Sort silently tolerates.
type Report struct {
	Unresolved []Unresolved
	// Cycles holds one closed path per cycle found, by component name,
	// e.g. [a b c a].
	Cycles [][]string
}

func (r Report) Empty() bool {
	return len(r.Unresolved) == 0 && len(r.Cycles) == 0
}

// Messages renders one line per problem.
func (r Report) Messages() []string {
	var out []string
	for _, u := range r.Unresolved {
		out = append(out, fmt.Sprintf("%s depends on unknown component %q", u.ID, u.Name))
	}
	for _, c := range r.Cycles {
		out = append(out, "dependency cycle: "+strings.Join(c, " -> "))
	}
	return out
}

// Check walks the same graph as Sort with temporary and permanent marks
// and reports unresolved names and cycles. It does not affect ordering.
func Check(src Source) Report {
	r := newResolver(src)
	var report Report

	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		visiting[id] = true
		stack = append(stack, id)
		for _, name := range src.DependencyNames(id) {
			dep, ok := r.resolve(name)
			if !ok {
				report.Unresolved = append(report.Unresolved, Unresolved{ID: id, Name: name})
				continue
			}
			if visiting[dep] {
				report.Cycles = append(report.Cycles, r.cyclePath(stack, dep))
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}
		stack = stack[:len(stack)-1]
		delete(visiting, id)
		visited[id] = true
	}

	for _, id := range r.ids {
		if _, ok := r.records[id]; ok && !visited[id] {
			visit(id)
		}
	}
	return report
}

func (r *resolver) cyclePath(stack []string, start string) []string {
	var path []string
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == start {
			for _, id := range stack[i:] {
				path = append(path, r.records[id].Metadata.Name)
			}
			break
		}
	}
	return append(path, r.records[start].Metadata.Name)
}
