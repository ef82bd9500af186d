package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boredom-js/boredom-build/internal/adapters/watch"
	"github.com/boredom-js/boredom-build/internal/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever a module, HTML or CSS file changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(e.ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher := watch.New(e.cfg.Root, e.cfg.OutDir)
		svc := usecase.NewWatchService(newBuildService(e), watcher, e.output)
		return svc.Run(ctx)
	},
}
