package filters

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the bursts of write events editors and
// atomic-rename saves produce into a single reload.
const reloadDebounce = 100 * time.Millisecond

// PatternWatcher hot-reloads the forbidden-instruction pattern file
// into a PatternSet when the file changes on disk. The statically
// configured patterns survive every reload; only the file-sourced
// patterns are replaced.
type PatternWatcher struct {
	path    string
	static  []string
	set     *PatternSet
	logger  *slog.Logger
	watcher *fsnotify.Watcher
}

// NewPatternWatcher creates a watcher for the given pattern file. The
// file's initial contents are loaded into the set immediately, merged
// with the static patterns.
func NewPatternWatcher(path string, static []string, set *PatternSet, logger *slog.Logger) (*PatternWatcher, error) {
	patterns, err := LoadPatternsFile(path)
	if err != nil {
		return nil, err
	}
	set.Replace(append(append([]string{}, static...), patterns...))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory, not the file: atomic saves replace the
	// inode and a file-level watch would go stale after one reload.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch patterns directory: %w", err)
	}

	return &PatternWatcher{
		path:    path,
		static:  static,
		set:     set,
		logger:  logger,
		watcher: watcher,
	}, nil
}

// Watch processes file events until the context is cancelled. A failed
// reload keeps the previous pattern set active.
func (pw *PatternWatcher) Watch(ctx context.Context) {
	defer pw.watcher.Close()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(pw.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case <-timerCh:
			pw.reload()

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			pw.logger.Warn("pattern watcher error", "error", err)
		}
	}
}

func (pw *PatternWatcher) reload() {
	patterns, err := LoadPatternsFile(pw.path)
	if err != nil {
		pw.logger.Warn("failed to reload patterns file, keeping previous set",
			"path", pw.path, "error", err)
		return
	}
	pw.set.Replace(append(append([]string{}, pw.static...), patterns...))
	pw.logger.Info("reloaded blocked patterns", "path", pw.path, "count", len(patterns))
}
