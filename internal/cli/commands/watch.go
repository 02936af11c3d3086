package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqldivider/internal/loader"
)

// watchDebounce coalesces bursts of events from a single save.
var watchDebounce = 100 * time.Millisecond

// watchInput calls run after each change to path until ctx is done.
// A file is watched through its parent directory so editors that save by
// rename keep triggering; a directory is watched recursively, minus the
// directories in exclude.
func watchInput(ctx context.Context, path string, exclude []string, logger *slog.Logger, run func()) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", loader.ErrInputNotFound, path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	exclude = loader.AbsDirs(exclude...)
	target := ""
	if info.IsDir() {
		if err := watchDir(watcher, path, exclude); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	} else {
		target = filepath.Clean(path)
		if err := watcher.Add(filepath.Dir(target)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	watchLoop(ctx, watcher, target, exclude, logger, run)
	return nil
}

// watchDir recursively adds a directory to the watcher.
func watchDir(watcher *fsnotify.Watcher, dir string, exclude []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Skip hidden and excluded directories
		if path != dir && (loader.Hidden(d.Name()) || loader.Excluded(path, exclude)) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevant reports whether event should trigger a re-run. target filters
// events to a single file when set. Events inside an excluded directory
// never trigger.
func relevant(event fsnotify.Event, target string, exclude []string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if target != "" {
		return filepath.Clean(event.Name) == target
	}
	if loader.Hidden(filepath.Base(event.Name)) || insideExcluded(event.Name, exclude) {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), loader.SQLExt)
}

// insideExcluded reports whether path is an excluded directory or lies below one.
func insideExcluded(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for dir := abs; ; {
		if loader.Excluded(dir, exclude) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// watchLoop handles file system events.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, exclude []string, logger *slog.Logger, run func()) {
	var (
		mu            sync.Mutex // serializes runs and guards stopped
		stopped       bool
		debounceTimer *time.Timer
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		// Waits for an in-flight run.
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// New directories below a watched tree are watched too
			if target == "" && event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if insideExcluded(event.Name, exclude) || loader.Hidden(fi.Name()) {
						continue
					}
					if err := watchDir(watcher, event.Name, exclude); err != nil {
						logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
					}
					continue
				}
			}

			if !relevant(event, target, exclude) {
				continue
			}

			// Debounce re-runs
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				mu.Lock()
				defer mu.Unlock()
				if stopped || ctx.Err() != nil {
					return
				}
				logger.Info("change detected", slog.String("file", filepath.Base(name)))
				run()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}
