package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/codegen"
	"github.com/boredom-js/boredom-build/internal/config"
	"github.com/boredom-js/boredom-build/internal/ctxlog"
)

var ErrNoHTML = errors.New("no HTML input found")

type BuildInput struct {
	// Changed lists the files that triggered a rebuild, for logging only.
	Changed []string
}

type BuildOutput struct {
	Success    bool
	Error      error
	Components int
	Files      []string
	Warnings   []string
}

type BuildService struct {
	cfg      config.Config
	compiler Compiler
	bundler  Bundler
	fs       FileSystem
	cli      CLIOutput
}

func NewBuildService(cfg config.Config, compiler Compiler, bundler Bundler, fs FileSystem, cli CLIOutput) *BuildService {
	return &BuildService{
		cfg:      cfg,
		compiler: compiler,
		bundler:  bundler,
		fs:       fs,
		cli:      cli,
	}
}

type htmlInput struct {
	name string
	doc  string
}

func (s *BuildService) BuildProject(ctx context.Context, input BuildInput) BuildOutput {
	log := ctxlog.FromContext(ctx)
	s.cli.PrintHeader("boreDOM Build")
	if len(input.Changed) > 0 {
		log.Info("rebuilding", "changed", input.Changed)
	}

	outDir := s.cfg.Path(s.cfg.OutDir)
	report := cli.NewBuildReport(s.cli, outDir)

	stepHTML := report.StartStep("Reading HTML")
	pages, err := s.readHTML()
	report.EndStep(stepHTML, err == nil, errString(err))
	if err != nil {
		report.Render()
		return BuildOutput{Success: false, Error: err}
	}

	entries := entryPoints(pages)
	log.Debug("bundler entry points", "entries", entries)

	stepBundle := report.StartStep("Bundling modules")
	b := bundle.New()
	var warnings []string
	if len(entries) > 0 {
		bundled, bundleWarnings, err := s.bundler.Bundle(ctx, s.cfg.Root, entries, outDir)
		warnings = append(warnings, bundleWarnings...)
		if err != nil {
			report.EndStep(stepBundle, false, err.Error())
			report.AddError("Bundle", "esbuild failed", strings.Split(err.Error(), "\n"))
			s.addWarnings(report, warnings)
			report.Render()
			return BuildOutput{Success: false, Error: fmt.Errorf("bundling failed: %w", err), Warnings: warnings}
		}
		b = bundled
	}
	report.EndStep(stepBundle, true, "")

	for _, p := range pages {
		b.Add(&bundle.File{Name: p.name, Kind: bundle.Asset, Contents: []byte(p.doc)})
	}
	if !s.cfg.InlineRuntime {
		warnings = append(warnings, s.copyRuntime(b, pages)...)
	}

	stepFinalize := report.StartStep("Inlining components")
	finalizeWarnings, err := s.compiler.Finalize(ctx, b)
	warnings = append(warnings, finalizeWarnings...)
	report.EndStep(stepFinalize, err == nil, errString(err))
	if err != nil {
		report.AddError("Finalize", err.Error(), nil)
		s.addWarnings(report, warnings)
		report.Render()
		return BuildOutput{Success: false, Error: fmt.Errorf("finalize failed: %w", err), Warnings: warnings}
	}

	components := len(s.compiler.Order())
	report.SetComponentCount(components)

	stepWrite := report.StartStep("Writing output")
	files, err := s.write(outDir, b)
	report.EndStep(stepWrite, err == nil, errString(err))
	if err != nil {
		report.AddError("Output", err.Error(), nil)
		s.addWarnings(report, warnings)
		report.Render()
		return BuildOutput{Success: false, Error: err, Components: components, Warnings: warnings}
	}

	s.addWarnings(report, warnings)
	report.Render()

	return BuildOutput{
		Success:    !report.HasFailures(),
		Components: components,
		Files:      files,
		Warnings:   warnings,
	}
}

func (s *BuildService) readHTML() ([]htmlInput, error) {
	var pages []htmlInput
	for _, name := range s.cfg.HTML {
		data, err := s.fs.ReadFile(s.cfg.Path(name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		pages = append(pages, htmlInput{name: cleanName(name), doc: string(data)})
	}
	if len(pages) == 0 {
		return nil, ErrNoHTML
	}
	return pages, nil
}

// cleanName turns a project relative path into a bundle file name.
func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "/")
}

// resolveSrc maps a script src found in page to a project relative path.
func resolveSrc(page, src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if strings.HasPrefix(src, "/") {
		return cleanName(src)
	}
	return cleanName(path.Join(path.Dir(page), src))
}

func entryPoints(pages []htmlInput) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pages {
		for _, src := range codegen.ModuleScripts(p.doc) {
			entry := "./" + resolveSrc(p.name, src)
			if !seen[entry] {
				seen[entry] = true
				out = append(out, entry)
			}
		}
	}
	return out
}

// copyRuntime adds the runtime file to the bundle for pages that keep an
// external runtime reference.
func (s *BuildService) copyRuntime(b *bundle.Bundle, pages []htmlInput) []string {
	var warnings []string
	for _, p := range pages {
		for _, src := range codegen.RuntimeScripts(p.doc) {
			name := resolveSrc(p.name, src)
			if _, ok := b.Get(name); ok {
				continue
			}
			data, ok := s.readRuntime()
			if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: runtime script %s not found in any of %v", p.name, src, s.cfg.RuntimeCandidates))
				continue
			}
			b.Add(&bundle.File{Name: name, Kind: bundle.Chunk, Contents: data})
		}
	}
	return warnings
}

func (s *BuildService) readRuntime() ([]byte, bool) {
	for _, p := range s.cfg.RuntimePaths() {
		if data, err := s.fs.ReadFile(p); err == nil {
			return data, true
		}
	}
	return nil, false
}

func (s *BuildService) write(outDir string, b *bundle.Bundle) ([]string, error) {
	var written []string
	for _, f := range b.Files() {
		dst := filepath.Join(outDir, filepath.FromSlash(f.Name))
		if err := s.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
		}
		if err := s.fs.WriteFile(dst, f.Contents, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		written = append(written, f.Name)
	}
	return written, nil
}

// addWarnings splits multi-line warnings into a message and details so
// component issues render as a list.
func (s *BuildService) addWarnings(report *cli.BuildReport, warnings []string) {
	for _, w := range warnings {
		lines := strings.Split(w, "\n")
		details := make([]string, 0, len(lines)-1)
		for _, l := range lines[1:] {
			details = append(details, strings.TrimPrefix(strings.TrimSpace(l), "- "))
		}
		report.AddWarning("Warning", lines[0], details)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
