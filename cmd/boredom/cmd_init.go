package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/adapters"
	"github.com/boredom-js/boredom-build/internal/adapters/cli"
	"github.com/boredom-js/boredom-build/internal/adapters/fs"
	"github.com/boredom-js/boredom-build/internal/templates"
	"github.com/boredom-js/boredom-build/internal/usecase"
)

var (
	flagTemplate string
	flagName     string
)

var initCmd = &cobra.Command{
	Use:   "init DIR",
	Short: "Create a new boreDOM project from a template",
	Example: "  boredom init myapp\n" +
		"  boredom init --template list myapp",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve project directory: %w", err)
		}

		svc := usecase.NewInitService(fs.NewOSFileSystem(), adapters.NewTemplateSource(), cli.NewOutput())
		result := svc.InitProject(usecase.InitInput{
			ProjectDir: projectDir,
			Template:   flagTemplate,
			Name:       flagName,
		})
		if result.Error != nil {
			return result.Error
		}
		if !result.Success {
			return errors.New("init failed")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&flagTemplate, "template", "t", "minimal",
		"template to use ("+strings.Join(templates.Names(), ", ")+")")
	initCmd.Flags().StringVar(&flagName, "name", "", "project name (default: directory name)")
}
