// Package boredom compiles boreDOM component modules into a single HTML
// document.
//
// A component module is an ES module exporting metadata, style, template
// and logic. The compiler folds those exports statically, without running
// any module code, orders components so dependencies come first and
// inlines them into the HTML entry as <style>, <template> and
// <script type="text/boredom"> blocks.
package boredom

import (
	"context"
	"io"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	"github.com/boredom-js/boredom-build/internal/adapters/esbuild"
	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/config"
	"github.com/boredom-js/boredom-build/internal/usecase"
)

type Config = config.Config

type Component = component.Record

type Metadata = component.Metadata

type Issue = component.Issue

type Analysis = component.Analysis

type Bundle = bundle.Bundle

type File = bundle.File

type BuildResult = usecase.BuildOutput

// Matchers for Config.ComponentInclude and Config.ComponentExclude.
type (
	Suffix   = config.Suffix
	Pattern  = config.Pattern
	Func     = config.Func
	Matchers = config.Matchers
)

func DefaultConfig() Config {
	return config.Default()
}

func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// Analyze parses and validates a single module.
func Analyze(ctx context.Context, id string, src []byte) Analysis {
	return component.Analyze(ctx, id, src)
}

// Builder runs builds for one project. Its component state survives
// between builds, so one Builder can serve repeated rebuilds.
type Builder struct {
	cfg      Config
	compiler *compiler.Compiler
	fs       *fs.OSFileSystem
	output   *cli.Output
}

func New(cfg Config) *Builder {
	files := fs.NewOSFileSystem()
	return &Builder{
		cfg:      cfg,
		compiler: compiler.New(cfg, files),
		fs:       files,
		output:   cli.NewWriterOutput(io.Discard),
	}
}

// SetOutput sends the build report to w.
func (b *Builder) SetOutput(w io.Writer) {
	b.output = cli.NewWriterOutput(w)
}

// Build bundles the configured HTML entries and writes the result.
func (b *Builder) Build(ctx context.Context) BuildResult {
	svc := usecase.NewBuildService(b.cfg, b.compiler, esbuild.NewBundler(b.compiler), b.fs, b.output)
	return svc.BuildProject(ctx, usecase.BuildInput{})
}

// Plugin returns the esbuild plugin that analyses component modules into
// the Builder's state. Call Finalize on the build output afterwards.
func (b *Builder) Plugin(ctx context.Context) api.Plugin {
	return esbuild.NewPlugin(ctx, b.compiler, b.cfg.Root).API()
}

// Finalize inlines the collected components into the HTML files of out
// and drops script chunks other than the runtime.
func (b *Builder) Finalize(ctx context.Context, out *Bundle) ([]string, error) {
	return b.compiler.Finalize(ctx, out)
}

// Components returns the collected components in dependency order.
func (b *Builder) Components() []Component {
	entries := b.compiler.Order()
	out := make([]Component, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}
