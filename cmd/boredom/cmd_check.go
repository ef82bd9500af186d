package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/compiler"
	"github.com/boredom-js/boredom-build/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Analyse component modules without bundling",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		svc := usecase.NewCheckService(compiler.New(e.cfg, e.fs), e.fs, e.output)
		result := svc.Check(e.ctx, usecase.CheckInput{Paths: args})
		if result.Error != nil {
			return result.Error
		}
		if !result.Success {
			return errors.New("invalid components found")
		}
		return nil
	},
}
