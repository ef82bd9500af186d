package usecase

import (
	"context"
	"fmt"

	"github.com/boredom-js/boredom-build/internal/ctxlog"
)

// WatchService rebuilds whenever the watcher reports changes. The
// compiler behind the BuildService keeps its session across rebuilds, so
// every rebuild replaces or prunes what the previous one recorded.
type WatchService struct {
	build   *BuildService
	watcher Watcher
	cli     CLIOutput
}

func NewWatchService(build *BuildService, watcher Watcher, cli CLIOutput) *WatchService {
	return &WatchService{build: build, watcher: watcher, cli: cli}
}

// Run builds once and then on every change until ctx is done. Failed
// builds are reported and watching continues.
func (s *WatchService) Run(ctx context.Context) error {
	log := ctxlog.FromContext(ctx)

	out := s.build.BuildProject(ctx, BuildInput{})
	if !out.Success && out.Error != nil {
		s.cli.PrintError("%v", out.Error)
	}

	s.cli.PrintStep("Watching for changes...")
	err := s.watcher.Run(ctx, func(paths []string) {
		out := s.build.BuildProject(ctx, BuildInput{Changed: paths})
		if !out.Success && out.Error != nil {
			s.cli.PrintError("%v", out.Error)
			log.Debug("rebuild failed", "error", out.Error)
		}
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
