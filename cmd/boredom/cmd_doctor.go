package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/usecase"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project setup without building",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		result := usecase.NewDoctorService(e.cfg, e.fs, e.output).Diagnose()
		if !result.Success {
			return fmt.Errorf("%d problems found", len(result.Problems))
		}
		return nil
	},
}
