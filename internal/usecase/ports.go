package usecase

import (
	"context"
	"io"
	iofs "io/fs"

	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/bundle"
	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/graph"
)

// Bundler produces the in-memory bundle of a set of entry points. The
// component compiler is installed into it by the caller.
type Bundler interface {
	Bundle(ctx context.Context, root string, entryPoints []string, outDir string) (*bundle.Bundle, []string, error)
}

// Compiler is the part of the component compiler the use cases drive.
type Compiler interface {
	Analyze(ctx context.Context, id string, src []byte) component.Analysis
	Apply(a component.Analysis)
	Warning(a component.Analysis) string
	Order() []graph.Entry
	DependencyReport() graph.Report
	Finalize(ctx context.Context, b *bundle.Bundle) ([]string, error)
}

// Watcher calls onChange with the paths changed in one debounce window
// until ctx is done.
type Watcher interface {
	Run(ctx context.Context, onChange func(paths []string)) error
}

// TemplateSource provides the starter projects used by init.
type TemplateSource interface {
	GetTemplate(name string) (iofs.FS, error)
	Names() []string
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)

	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Stdout() io.Writer
	Stderr() io.Writer
}

type FileSystem = fs.FileSystem
