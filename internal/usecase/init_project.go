package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/boredom-js/boredom-build/internal/templates"
)

type InitInput struct {
	ProjectDir string
	Template   string
	// Name overrides the project name derived from ProjectDir.
	Name string
}

type InitOutput struct {
	Success bool
	Files   []string
	Error   error
}

type InitService struct {
	fs        FileSystem
	templates TemplateSource
	cli       CLIOutput
}

func NewInitService(fs FileSystem, templates TemplateSource, cli CLIOutput) *InitService {
	return &InitService{
		fs:        fs,
		templates: templates,
		cli:       cli,
	}
}

func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("boreDOM Init")

	empty, err := s.fs.DirEmpty(input.ProjectDir)
	if err != nil {
		return s.fail(fmt.Errorf("failed to read directory: %w", err))
	}
	if !empty {
		return s.fail(fmt.Errorf("directory '%s' already exists and is not empty", input.ProjectDir))
	}

	templateFS, err := s.templates.GetTemplate(input.Template)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			return s.fail(fmt.Errorf("invalid template '%s' (available: %s)",
				input.Template, strings.Join(s.templates.Names(), ", ")))
		}
		return s.fail(err)
	}

	name := input.Name
	if name == "" {
		name = templates.DeriveProjectName(input.ProjectDir)
	}
	data := templates.TemplateData{Name: name}

	var created []string
	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		rel, isTemplate := templates.ProcessFilename(path, data)
		target := filepath.Join(input.ProjectDir, filepath.FromSlash(rel))

		if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}
		processed, err := templates.ProcessContent(content, isTemplate, data)
		if err != nil {
			return fmt.Errorf("failed to render template %s: %w", path, err)
		}
		if err := s.fs.WriteFile(target, processed, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", target, err)
		}

		if isTemplate {
			s.cli.PrintFile(rel + " (generated)")
		} else {
			s.cli.PrintFile(rel)
		}
		created = append(created, rel)
		return nil
	})
	if err != nil {
		return s.fail(err)
	}

	s.cli.PrintSuccess("Created %d files using '%s' template", len(created), input.Template)
	s.cli.PrintStep("")
	s.cli.PrintStep("Next steps:")
	s.cli.PrintStep("  cd %s", input.ProjectDir)
	s.cli.PrintStep("  npm install")
	s.cli.PrintStep("  boredom build")

	return InitOutput{Success: true, Files: created}
}

func (s *InitService) fail(err error) InitOutput {
	s.cli.PrintError("%v", err)
	return InitOutput{Success: false, Error: err}
}
