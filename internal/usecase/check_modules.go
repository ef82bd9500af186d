package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/boredom-js/boredom-build/internal/component"
	"github.com/boredom-js/boredom-build/internal/eval"
)

type CheckInput struct {
	Paths []string
}

type ModuleResult struct {
	Path     string
	Analysis component.Analysis
	Warning  string
}

type CheckOutput struct {
	Success bool
	Error   error
	Modules []ModuleResult
}

// CheckService analyses modules without bundling them.
type CheckService struct {
	compiler Compiler
	fs       FileSystem
	cli      CLIOutput
}

func NewCheckService(compiler Compiler, fs FileSystem, cli CLIOutput) *CheckService {
	return &CheckService{compiler: compiler, fs: fs, cli: cli}
}

// Check analyses every path and prints one verdict per module. It fails
// when a module that resembles a component has fatal issues.
func (s *CheckService) Check(ctx context.Context, input CheckInput) CheckOutput {
	out := CheckOutput{Success: true}
	for _, p := range input.Paths {
		src, err := s.fs.ReadFile(p)
		if err != nil {
			return CheckOutput{Success: false, Error: fmt.Errorf("failed to read %s: %w", p, err), Modules: out.Modules}
		}

		id := filepath.ToSlash(p)
		a := s.compiler.Analyze(ctx, id, src)
		s.compiler.Apply(a)
		res := ModuleResult{Path: p, Analysis: a, Warning: s.compiler.Warning(a)}
		out.Modules = append(out.Modules, res)

		switch {
		case a.Record != nil && len(a.Issues) == 0:
			s.cli.PrintSuccess("%s: component %q", id, a.Record.Metadata.Name)
		case a.Record != nil:
			s.cli.PrintWarning("%s", component.FormatWarning(id, a.Issues))
		case a.LooksLikeComponent:
			s.cli.PrintError("%s", component.FormatWarning(id, a.Issues))
			out.Success = false
		default:
			s.cli.PrintStep("%s: not a component", id)
		}
	}

	if !out.Success {
		s.cli.PrintStep("Only these calls are folded at build time: %s", strings.Join(eval.AllowedCalls(), ", "))
	}

	for _, msg := range s.compiler.DependencyReport().Messages() {
		s.cli.PrintWarning("%s", msg)
	}
	for _, e := range s.compiler.Order() {
		s.cli.PrintFile(fmt.Sprintf("%s (%s)", e.Record.Metadata.Name, e.ID))
	}
	return out
}
