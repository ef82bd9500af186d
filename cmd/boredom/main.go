package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd.AddCommand(buildCmd, watchCmd, checkCmd, initCmd, doctorCmd)

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"config file (default: <root>/"+configFileName+" when present)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "",
		"project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "",
		"log format: text or json")

	for _, cmd := range []*cobra.Command{buildCmd, watchCmd} {
		cmd.Flags().StringVarP(&flagOutDir, "out-dir", "o", "", "output directory")
		cmd.Flags().StringArrayVar(&flagHTML, "html", nil, "HTML input (repeatable)")
		cmd.Flags().BoolVar(&flagNoInline, "no-inline-runtime", false, "keep the runtime as an external script")
		cmd.Flags().BoolVar(&flagNoOptimize, "no-optimize-styles", false, "emit component styles unminified")
		cmd.Flags().BoolVar(&flagStrict, "strict-dependencies", false, "warn about unresolved dependencies and cycles")
		cmd.Flags().BoolVar(&flagManifest, "manifest", false, "write "+manifestFileName)
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
