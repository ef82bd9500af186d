// Package esbuild hosts the component compiler inside esbuild's Go API.
package esbuild

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/session"
)

const PluginName = "boredom-components"

// LoadFilter selects the modules the plugin loads itself.
const LoadFilter = `\.(m|c)?js$`

// Plugin records every loaded module into a batch and commits it to the
// compiler's session when the build ends. esbuild calls OnLoad from
// several goroutines; only the batch is shared between them.
type Plugin struct {
	ctx      context.Context
	compiler *compiler.Compiler
	root     string

	mu    sync.Mutex
	batch *session.Batch
}

func NewPlugin(ctx context.Context, c *compiler.Compiler, root string) *Plugin {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Plugin{ctx: ctx, compiler: c, root: root}
}

// ModuleID is the id a loaded path is analysed under: relative to the
// project root when possible, slash separated.
func (p *Plugin) ModuleID(path string) string {
	if rel, err := filepath.Rel(p.root, path); err == nil && !filepath.IsAbs(rel) {
		path = rel
	}
	return filepath.ToSlash(path)
}

func (p *Plugin) API() api.Plugin {
	return api.Plugin{
		Name:  PluginName,
		Setup: p.setup,
	}
}

func (p *Plugin) setup(build api.PluginBuild) {
	build.OnStart(func() (api.OnStartResult, error) {
		p.mu.Lock()
		p.batch = p.compiler.NewBatch()
		p.mu.Unlock()
		return api.OnStartResult{}, nil
	})

	build.OnLoad(api.OnLoadOptions{Filter: LoadFilter, Namespace: "file"}, p.load)

	build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
		p.mu.Lock()
		batch := p.batch
		p.batch = nil
		p.mu.Unlock()
		if batch != nil {
			// a failed build may not have loaded every module
			p.compiler.Commit(batch, len(result.Errors) == 0)
		}
		return api.OnEndResult{}, nil
	})
}

func (p *Plugin) currentBatch() *session.Batch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batch
}

func (p *Plugin) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	id := p.ModuleID(args.Path)
	if !p.compiler.Accepts(id) {
		// let esbuild's default loader handle it
		return api.OnLoadResult{}, nil
	}

	src, err := os.ReadFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, err
	}

	result := api.OnLoadResult{
		Contents:   ptr(string(src)),
		ResolveDir: filepath.Dir(args.Path),
		Loader:     api.LoaderJS,
	}

	batch := p.currentBatch()
	if batch == nil {
		return result, nil
	}
	if w := p.compiler.Record(p.ctx, batch, id, src); w != "" {
		result.Warnings = append(result.Warnings, api.Message{Text: w})
	}
	return result, nil
}

func ptr[T any](v T) *T {
	return &v
}
