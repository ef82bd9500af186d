// Package codegen turns sorted components into markup and rewrites the
// HTML assets of a bundle into a single self-contained document.
package codegen

import (
	"fmt"
	"path"

	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/graph"
)

type Options struct {
	InlineRuntime     bool
	OptimizeStyles    bool
	Entry             string
	RuntimeCandidates []string
	Files             FileReader
}

// Finalize injects the component triplets into every HTML asset of b,
// inlines the runtime, removes the bootstrap script and deletes every
// script chunk except the runtime. Problems are returned as warnings.
func Finalize(b *bundle.Bundle, entries []graph.Entry, opts Options) []string {
	var warnings []string
	markup := RenderTriplets(entries, opts.OptimizeStyles)

	for _, f := range b.Files() {
		if !f.IsHTML() {
			continue
		}
		doc := string(f.Contents)

		if len(entries) > 0 {
			var ok bool
			doc, ok = InsertBeforeBodyEnd(doc, markup)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s has no </body>; %d component(s) were not inserted", f.Name, len(entries)))
			}
		}

		if opts.InlineRuntime {
			var found, inlined bool
			doc, found, inlined = InlineRuntime(doc, opts.Files, opts.RuntimeCandidates)
			if found && !inlined {
				warnings = append(warnings, fmt.Sprintf("%s: runtime script not found in any of %v; keeping the external reference", f.Name, opts.RuntimeCandidates))
			}
		}

		if opts.Entry != "" {
			doc, _ = RemoveBootstrap(doc, opts.Entry)
		}

		f.Contents = []byte(doc)
	}

	for _, f := range b.Files() {
		if f.Kind == bundle.Chunk && !IsRuntimeFile(path.Base(f.Name)) {
			b.Delete(f.Name)
		}
	}
	return warnings
}
