package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/adapters/esbuild"
	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/usecase"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundle the HTML entries and inline every component",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		svc := newBuildService(e)

		result := svc.BuildProject(e.ctx, usecase.BuildInput{})
		if result.Error != nil {
			return result.Error
		}
		if !result.Success {
			return errors.New("build failed")
		}
		e.output.PrintDone("Build completed successfully")
		return nil
	},
}

func newBuildService(e *env) *usecase.BuildService {
	comp := compiler.New(e.cfg, e.fs)
	return usecase.NewBuildService(e.cfg, comp, esbuild.NewBundler(comp), e.fs, e.output)
}
