package component

import (
	"context"
	"fmt"
	"regexp"

	"github.com/boredom-js/boredom-build/internal/eval"
	"github.com/boredom-js/boredom-build/internal/jsast"
)

// LooksLikeComponent reports whether the module exports metadata, or at
// least two of the four component exports. Partially written components
// then get diagnostics instead of being skipped silently.
func LooksLikeComponent(t *Tables) bool {
	if _, ok := t.Exports[ExportMetadata]; ok {
		return true
	}
	present := 0
	for _, name := range requiredExports {
		if _, ok := t.Exports[name]; ok {
			present++
		}
	}
	return present >= 2
}

type validator struct {
	tables *Tables
	ev     *eval.Evaluator
	issues []Issue
}

func (v *validator) fatal(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...), Fatal: true})
}

func (v *validator) warn(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate folds the component exports. The record is nil when any fatal
// issue was found; non-fatal issues come back alongside a record whose
// offending fields fell back to safe defaults.
func Validate(t *Tables) (*Record, []Issue) {
	v := &validator{tables: t, ev: eval.New(t.Bindings)}

	for _, name := range requiredExports {
		if _, ok := t.Exports[name]; !ok {
			v.fatal(name, "missing required export %q", name)
		}
	}

	var rec Record
	if exp, ok := t.Exports[ExportMetadata]; ok {
		rec.Metadata = v.metadata(exp)
	}
	if exp, ok := t.Exports[ExportStyle]; ok {
		rec.Style = v.str(ExportStyle, exp)
	}
	if exp, ok := t.Exports[ExportTemplate]; ok {
		rec.Template = v.str(ExportTemplate, exp)
	}
	if exp, ok := t.Exports[ExportLogic]; ok {
		rec.LogicSource = v.logic(exp)
	}

	for _, issue := range v.issues {
		if issue.Fatal {
			return nil, v.issues
		}
	}
	return &rec, v.issues
}

func (v *validator) metadata(exp Export) Metadata {
	md := Metadata{
		Dependencies: []string{},
		Props:        []string{},
		Events:       []string{},
	}

	r := v.ev.Eval(exp.Node)
	if !r.OK {
		v.fatal(ExportMetadata, "metadata could not be statically evaluated")
		v.fatal("metadata.name", "metadata.name must be a non-empty string")
		return md
	}
	obj, ok := r.Value.(*eval.Object)
	if !ok {
		v.fatal(ExportMetadata, "metadata must be a plain object, got %s", r.Value.Kind())
		v.fatal("metadata.name", "metadata.name must be a non-empty string")
		return md
	}

	name, _ := obj.Get("name")
	if s, ok := name.(eval.String); ok && s != "" {
		md.Name = string(s)
	} else {
		v.fatal("metadata.name", "metadata.name must be a non-empty string")
	}

	if version, ok := obj.Get("version"); ok && version.Kind() != eval.KindUndefined {
		if s, ok := version.(eval.String); ok {
			md.Version = string(s)
		} else {
			v.warn("metadata.version", "metadata.version must be a string; dropping it")
		}
	}

	md.Dependencies = v.stringList(obj, "dependencies")
	md.Props = v.stringList(obj, "props")
	md.Events = v.stringList(obj, "events")
	return md
}

func (v *validator) stringList(obj *eval.Object, key string) []string {
	out := []string{}
	field := "metadata." + key

	raw, ok := obj.Get(key)
	if !ok || raw.Kind() == eval.KindUndefined {
		return out
	}
	arr, ok := raw.(*eval.Array)
	if !ok {
		v.warn(field, "%s must be an array of strings; using []", field)
		return out
	}
	for i, elem := range arr.Elems {
		s, ok := elem.(eval.String)
		if !ok {
			v.warn(field, "%s[%d] is a %s, not a string; dropping it", field, i, elem.Kind())
			continue
		}
		out = append(out, string(s))
	}
	return out
}

func (v *validator) str(field string, exp Export) string {
	r := v.ev.Eval(exp.Node)
	if !r.OK {
		v.fatal(field, "%s could not be statically evaluated to a string", field)
		return ""
	}
	s, ok := r.Value.(eval.String)
	if !ok {
		v.fatal(field, "%s must be a string, got %s", field, r.Value.Kind())
		return ""
	}
	return string(s)
}

// logic follows at most one identifier to a function-shaped node and
// returns its source text exactly as written.
func (v *validator) logic(exp Export) string {
	node, source := exp.Node, exp.Source
	if id, ok := node.Data.(*jsast.EIdentifier); ok {
		if bound, ok := v.tables.Bindings.Lookup(id.Name); ok {
			node, source = bound, v.tables.Text(bound)
		}
	}
	if !jsast.IsFunction(node.Data) || source == "" {
		v.fatal(ExportLogic, "logic must be a function declaration, function expression or arrow function")
		return ""
	}
	return source
}

// componentExportPattern is a textual stand-in for LooksLikeComponent
// when the module does not parse.
var componentExportPattern = regexp.MustCompile(`\bexport\s+(?:(?:const|let|var|class|(?:async\s+)?function\s*\*?)\s*(?:metadata|style|template|logic)\b|\{[^}]*\b(?:metadata|style|template|logic)\b[^}]*\})`)

// Analyze parses and validates one module. It never returns an error:
// parse failures become a single fatal issue.
func Analyze(ctx context.Context, id string, src []byte) Analysis {
	mod, err := jsast.Parse(ctx, src)
	if err != nil {
		return Analysis{
			ID: id,
			Issues: []Issue{{
				Field:   "module",
				Message: fmt.Sprintf("failed to parse module: %v", err),
				Fatal:   true,
			}},
			LooksLikeComponent: componentExportPattern.Match(src),
		}
	}

	t := Collect(mod)
	if !LooksLikeComponent(t) {
		return Analysis{ID: id}
	}

	rec, issues := Validate(t)
	return Analysis{
		ID:                 id,
		Record:             rec,
		Issues:             issues,
		LooksLikeComponent: true,
	}
}
