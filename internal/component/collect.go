package component

import (
	"github.com/boredom-js/boredom-build/internal/jsast"
)

// Bindings maps top-level names to the node that defines their value:
// a declarator initializer or a function/class declaration.
type Bindings map[string]jsast.Expr

func (b Bindings) Lookup(name string) (jsast.Expr, bool) {
	e, ok := b[name]
	return e, ok
}

// Export is one entry of the export table.
type Export struct {
	Node   jsast.Expr
	Source string
}

type Exports map[string]Export

// Tables are the binding and export tables of one module.
type Tables struct {
	Bindings Bindings
	Exports  Exports
	source   []byte
}

// Text returns the original source text of a node.
func (t *Tables) Text(e jsast.Expr) string {
	return e.Span.Text(t.source)
}

// Collect indexes the module's top level in two passes: declarations
// first, then exports, so specifiers can refer to later declarations.
func Collect(mod *jsast.Module) *Tables {
	t := &Tables{
		Bindings: make(Bindings),
		Exports:  make(Exports),
		source:   mod.Source,
	}

	for _, stmt := range mod.Stmts {
		if exp, ok := stmt.(*jsast.SExport); ok {
			stmt = exp.Decl
		}
		t.bind(stmt)
	}

	for _, stmt := range mod.Stmts {
		switch s := stmt.(type) {
		case *jsast.SExport:
			t.exportDecl(s.Decl)
		case *jsast.SExportClause:
			t.exportClause(s)
		}
	}
	return t
}

func (t *Tables) bind(stmt jsast.Stmt) {
	switch s := stmt.(type) {
	case *jsast.SVar:
		for _, d := range s.Decls {
			if d.Name != "" && d.HasInit {
				t.Bindings[d.Name] = d.Init
			}
		}
	case *jsast.SFunction:
		if s.Name != "" {
			t.Bindings[s.Name] = s.Value
		}
	case *jsast.SClass:
		if s.Name != "" {
			t.Bindings[s.Name] = s.Value
		}
	}
}

func (t *Tables) exportDecl(stmt jsast.Stmt) {
	switch s := stmt.(type) {
	case *jsast.SVar:
		for _, d := range s.Decls {
			if d.Name == "" {
				continue
			}
			node := d.Init
			if !d.HasInit {
				node = jsast.Expr{Data: &jsast.EUndefined{}}
			}
			t.Exports[d.Name] = Export{Node: node, Source: t.Text(node)}
		}
	case *jsast.SFunction:
		t.Exports[s.Name] = Export{Node: s.Value, Source: t.Text(s.Value)}
	case *jsast.SClass:
		t.Exports[s.Name] = Export{Node: s.Value, Source: t.Text(s.Value)}
	}
}

func (t *Tables) exportClause(s *jsast.SExportClause) {
	for _, spec := range s.Specifiers {
		if s.HasFrom {
			// the value lives in another module and can not be folded here
			t.Exports[spec.Exported] = Export{Node: jsast.Expr{Data: &jsast.EUnsupported{Kind: "re-export"}}}
			continue
		}
		if node, ok := t.Bindings[spec.Local]; ok {
			t.Exports[spec.Exported] = Export{Node: node, Source: t.Text(node)}
			continue
		}
		t.Exports[spec.Exported] = Export{Node: jsast.Expr{Data: &jsast.EIdentifier{Name: spec.Local}}}
	}
}
