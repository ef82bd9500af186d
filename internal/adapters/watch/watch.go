// Package watch turns filesystem events under a project root into
// debounced rebuild requests.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/boredom-js/boredom-build/internal/ctxlog"
)

const DefaultDebounce = 100 * time.Millisecond

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
}

var rebuildExts = map[string]bool{
	".js":   true,
	".mjs":  true,
	".cjs":  true,
	".html": true,
	".css":  true,
}

func ShouldRebuildForPath(path string) bool {
	return rebuildExts[strings.ToLower(filepath.Ext(path))]
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Watcher reports changed files under Root. Directories named in
// skipDirs and the output directory are never watched.
type Watcher struct {
	Root     string
	OutDir   string
	Debounce time.Duration
}

func New(root, outDir string) *Watcher {
	return &Watcher{Root: root, OutDir: outDir, Debounce: DefaultDebounce}
}

func (w *Watcher) shouldSkipDir(path string) bool {
	if _, ok := skipDirs[filepath.Base(path)]; ok {
		return true
	}
	if w.OutDir == "" {
		return false
	}
	out := w.OutDir
	if !filepath.IsAbs(out) {
		out = filepath.Join(w.Root, out)
	}
	return filepath.Clean(path) == filepath.Clean(out)
}

func (w *Watcher) watchDirs(watcher *fsnotify.Watcher, root string, log *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn("cannot access path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldSkipDir(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (w *Watcher) shouldAddWatchDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	return info.IsDir() && !w.shouldSkipDir(event.Name)
}

// Run watches until ctx is done and calls onChange with the set of paths
// that changed within one debounce window. onChange runs on the Run
// goroutine, so a slow rebuild delays the next one instead of overlapping.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	log := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.watchDirs(watcher, w.Root, log); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.Root, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.shouldAddWatchDir(event) {
				if err := w.watchDirs(watcher, event.Name, log); err != nil {
					log.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
				continue
			}
			if !isWatchEvent(event.Op) || !ShouldRebuildForPath(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]struct{})
			onChange(paths)
		}
	}
}
