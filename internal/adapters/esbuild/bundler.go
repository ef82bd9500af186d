package esbuild

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/compiler"
)

// Bundler runs esbuild with the component plugin installed and returns the
// outputs in memory.
type Bundler struct {
	compiler *compiler.Compiler
}

func NewBundler(c *compiler.Compiler) *Bundler {
	return &Bundler{compiler: c}
}

// Bundle builds entryPoints into outDir in memory and returns the
// outputs together with esbuild's warnings.
func (b *Bundler) Bundle(ctx context.Context, root string, entryPoints []string, outDir string) (*bundle.Bundle, []string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	absOut := outDir
	if !filepath.IsAbs(absOut) {
		absOut = filepath.Join(absRoot, outDir)
	}

	plugin := NewPlugin(ctx, b.compiler, absRoot)
	res := api.Build(api.BuildOptions{
		AbsWorkingDir: absRoot,
		EntryPoints:   entryPoints,
		Bundle:        true,
		Write:         false,
		Outdir:        absOut,
		Format:        api.FormatESModule,
		Splitting:     true,
		EntryNames:    "[dir]/[name]",
		ChunkNames:    "chunks/[name]-[hash]",
		LogLevel:      api.LogLevelSilent,
		Plugins:       []api.Plugin{plugin.API()},
	})

	out := bundle.New()
	warnings := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, formatMessage(w))
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, formatMessage(e))
		}
		return nil, warnings, errors.New(strings.Join(msgs, "\n"))
	}

	for _, f := range res.OutputFiles {
		name, err := filepath.Rel(absOut, f.Path)
		if err != nil {
			return nil, warnings, fmt.Errorf("output %s is outside %s: %w", f.Path, absOut, err)
		}
		kind := bundle.Asset
		if strings.HasSuffix(f.Path, ".js") {
			kind = bundle.Chunk
		}
		out.Add(&bundle.File{
			Name:     filepath.ToSlash(name),
			Kind:     kind,
			Contents: f.Contents,
		})
	}
	return out, warnings, nil
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}
