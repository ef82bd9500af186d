package usecase

import (
	"fmt"
	"path"

	"github.com/boredom-js/boredom-build/internal/codegen"
	"github.com/boredom-js/boredom-build/internal/config"
)

type DoctorOutput struct {
	Success  bool
	Problems []string
	Warnings []string
}

// DoctorService checks that a project can be built before bundling it.
type DoctorService struct {
	cfg config.Config
	fs  FileSystem
	cli CLIOutput
}

func NewDoctorService(cfg config.Config, fs FileSystem, cli CLIOutput) *DoctorService {
	return &DoctorService{cfg: cfg, fs: fs, cli: cli}
}

func (s *DoctorService) Diagnose() DoctorOutput {
	s.cli.PrintHeader("boreDOM Doctor")

	var out DoctorOutput
	problem := func(msg string, args ...any) {
		m := fmt.Sprintf(msg, args...)
		out.Problems = append(out.Problems, m)
		s.cli.PrintError("%s", m)
	}
	warn := func(msg string, args ...any) {
		m := fmt.Sprintf(msg, args...)
		out.Warnings = append(out.Warnings, m)
		s.cli.PrintWarning("%s", m)
	}

	runtimeTags := 0
	for _, name := range s.cfg.HTML {
		page := cleanName(name)
		data, err := s.fs.ReadFile(s.cfg.Path(name))
		if err != nil {
			problem("%s: cannot be read: %v", page, err)
			continue
		}
		doc := string(data)

		if _, ok := codegen.InsertBeforeBodyEnd(doc, ""); !ok {
			problem("%s: no </body>, components cannot be inlined", page)
		}

		bootstrap := false
		for _, src := range codegen.ModuleScripts(doc) {
			rel := resolveSrc(page, src)
			if !s.fs.FileExists(s.cfg.Path(rel)) {
				problem("%s: module script %s not found", page, src)
				continue
			}
			if path.Base(rel) == s.cfg.Entry {
				bootstrap = true
			}
		}
		if !bootstrap {
			warn("%s: no module script loads %s, no components will be found", page, s.cfg.Entry)
		}

		runtimeTags += len(codegen.RuntimeScripts(doc))
		s.cli.PrintSuccess("%s checked", page)
	}

	if runtimeTags == 0 {
		warn("no page loads the boreDOM runtime script")
	} else if s.cfg.InlineRuntime && !s.runtimeAvailable() {
		problem("runtime not found in any of %v", s.cfg.RuntimeCandidates)
	}

	out.Success = len(out.Problems) == 0
	if out.Success {
		s.cli.PrintDone(fmt.Sprintf("No problems found (%d warnings)", len(out.Warnings)))
	} else {
		s.cli.PrintDone(fmt.Sprintf("%d problems found", len(out.Problems)))
	}
	return out
}

func (s *DoctorService) runtimeAvailable() bool {
	for _, p := range s.cfg.RuntimePaths() {
		if s.fs.FileExists(p) {
			return true
		}
	}
	return false
}
