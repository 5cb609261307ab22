package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"assetconv/config"
	"assetconv/logger"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher re-runs the full pipeline whenever the source tree changes.
// Events are debounced so a burst of writes (an export from an image
// editor, a git checkout) triggers a single rebuild after things settle.
type Watcher struct {
	cfg      *config.Config
	console  *logger.Console
	runner   *Runner
	watcher  *fsnotify.Watcher
	Debounce time.Duration
}

func NewWatcher(cfg *config.Config, console *logger.Console, runner *Runner) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		cfg:      cfg,
		console:  console,
		runner:   runner,
		watcher:  fsWatcher,
		Debounce: defaultDebounce,
	}, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Start blocks until ctx is cancelled, rebuilding the target after
// every settled burst of source changes. The initial run has already
// happened by the time Start is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.cfg.Paths.SourceDir); err != nil {
		return err
	}
	w.console.Info("watching %s for changes", w.cfg.Paths.SourceDir)

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.console.Warn("watch new directory %s: %v", ev.Name, err)
					}
				}
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.Debounce)
			pending = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.console.Warn("watch error: %v", err)

		case <-timer.C:
			pending = false
			if _, err := w.runner.Run(ctx); err != nil {
				w.console.Error("rebuild failed: %v", err)
			}
		}
	}
}

// addTree registers dir and every directory below it. fsnotify watches
// are not recursive, so new subdirectories are added as they appear.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}
