package lint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDebounce groups bursts of writes into one rebuild.
var WatchDebounce = 100 * time.Millisecond

// Watch calls rebuild whenever a result file under paths is written or
// created, until ctx is done. Directories are watched recursively, including
// subdirectories created while watching.
func Watch(ctx context.Context, logger *zap.Logger, paths []string, rebuild func() error) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addRecursive(watcher, p); err != nil {
			return fmt.Errorf("error watching %s: %w", p, err)
		}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						logger.Error("Error watching new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					// files written before the watch was added are picked up on rebuild
					pending = time.After(WatchDebounce)
					continue
				}
			}
			if !hasDesiredExtension(event.Name) {
				continue
			}
			logger.Debug("Result file changed", zap.String("file", event.Name))
			pending = time.After(WatchDebounce)
		case <-pending:
			pending = nil
			if err := rebuild(); err != nil {
				logger.Error("Error rebuilding report", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == root {
			return watcher.Add(path)
		}
		return nil
	})
}
