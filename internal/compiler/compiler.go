// Package compiler wires component analysis, the build session, ordering
// and code generation into the hooks a bundler host calls.
package compiler

import (
	"context"

	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/codegen"
	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/config"
	"github.com/boredom-js/boredom-build/internal/ctxlog"
	"github.com/boredom-js/boredom-build/internal/graph"
	"github.com/boredom-js/boredom-build/internal/session"
)

// Compiler owns the session of one build, or of every rebuild of a watch
// process. Transform and Commit must not run concurrently with Finalize.
type Compiler struct {
	cfg     config.Config
	files   codegen.FileReader
	session *session.Session
}

func New(cfg config.Config, files codegen.FileReader) *Compiler {
	return &Compiler{
		cfg:     cfg,
		files:   files,
		session: session.New(),
	}
}

func (c *Compiler) Config() config.Config {
	return c.cfg
}

func (c *Compiler) Session() *session.Session {
	return c.session
}

// Accepts reports whether id goes through component analysis.
func (c *Compiler) Accepts(id string) bool {
	return c.cfg.Accepts(id)
}

// Analyze runs the per-module analysis. It touches no shared state and
// may be called from any goroutine.
func (c *Compiler) Analyze(ctx context.Context, id string, src []byte) component.Analysis {
	id = config.NormalizeID(id)
	a := component.Analyze(ctx, id, src)

	log := ctxlog.FromContext(ctx)
	switch {
	case a.Record != nil:
		log.Debug("component found", "id", id, "name", a.Record.Metadata.Name, "dependencies", a.Record.Metadata.Dependencies)
	case a.LooksLikeComponent:
		log.Debug("invalid component", "id", id, "issues", len(a.Issues))
	}
	return a
}

// Warning returns the diagnostic to report for a, or "".
func (c *Compiler) Warning(a component.Analysis) string {
	if !c.cfg.ValidateComponents {
		return ""
	}
	return a.Warning()
}

// Transform analyses one module and applies the result to the session
// right away. Hosts that transform in parallel use NewBatch instead.
func (c *Compiler) Transform(ctx context.Context, id string, src []byte) string {
	if !c.Accepts(id) {
		return ""
	}
	a := c.Analyze(ctx, id, src)
	c.Apply(a)
	return c.report(ctx, a)
}

// Apply stores or removes the session entry for an analysed module.
func (c *Compiler) Apply(a component.Analysis) {
	c.session.Apply(a)
}

// Record analyses one module into b and returns its warning.
func (c *Compiler) Record(ctx context.Context, b *session.Batch, id string, src []byte) string {
	if !c.Accepts(id) {
		return ""
	}
	a := c.Analyze(ctx, id, src)
	b.Record(a)
	return c.report(ctx, a)
}

func (c *Compiler) report(ctx context.Context, a component.Analysis) string {
	w := c.Warning(a)
	if w != "" {
		ctxlog.FromContext(ctx).Debug("component warning", "id", a.ID, "issues", len(a.Issues))
	}
	return w
}

func (c *Compiler) NewBatch() *session.Batch {
	return session.NewBatch()
}

// Commit merges b into the session. With prune set, components of modules
// that were not part of b are dropped, which is what a full rebuild wants.
func (c *Compiler) Commit(b *session.Batch, prune bool) {
	b.Commit(c.session, prune)
}

// Order returns the session's components in dependency order.
func (c *Compiler) Order() []graph.Entry {
	return graph.Sort(c.session)
}

// DependencyReport lists unresolved dependency names and cycles.
func (c *Compiler) DependencyReport() graph.Report {
	return graph.Check(c.session)
}

// Finalize rewrites the bundle and returns warnings.
func (c *Compiler) Finalize(ctx context.Context, b *bundle.Bundle) ([]string, error) {
	log := ctxlog.FromContext(ctx)
	entries := c.Order()

	var warnings []string
	if c.cfg.StrictDependencies {
		warnings = append(warnings, c.DependencyReport().Messages()...)
	}

	warnings = append(warnings, codegen.Finalize(b, entries, codegen.Options{
		InlineRuntime:     c.cfg.InlineRuntime,
		OptimizeStyles:    c.cfg.OptimizeStyles,
		Entry:             c.cfg.Entry,
		RuntimeCandidates: c.cfg.RuntimePaths(),
		Files:             c.files,
	})...)

	if c.cfg.Manifest {
		data, err := BuildManifest(entries).JSON()
		if err != nil {
			return warnings, err
		}
		b.Add(&bundle.File{Name: ManifestFile, Kind: bundle.Asset, Contents: data})
	}

	log.Debug("finalized bundle", "components", len(entries), "files", len(b.Files()))
	return warnings, nil
}
