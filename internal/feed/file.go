package feed

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 50 * time.Millisecond

// File emits a snapshot whenever a JSON file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors and writers that replace the file by rename are still seen.
type File struct {
	Path     string
	Debounce time.Duration
	Logger   *logging.Logger
}

// Name returns the file's base name.
func (f *File) Name() string {
	return filepath.Base(f.Path)
}

// Run emits the current contents, then one update per debounced change.
func (f *File) Run(ctx context.Context, emit Emit) error {
	logger := f.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	debounce := f.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return errors.NewFeedError("resolving path", err).WithSource("file").WithTarget(f.Path).WithRetryable(false)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewFeedError("creating watcher", err).WithSource("file").WithTarget(abs)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.NewFeedError("watching directory", err).WithSource("file").WithTarget(abs).WithRetryable(false)
	}

	f.load(abs, emit, logger)

	timer := time.NewTimer(0)
	<-timer.C
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			f.load(abs, emit, logger)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "path", abs, "error", werr)
			emit(failure(f.Name(), errors.NewFeedError("watcher error", werr).WithSource("file").WithTarget(abs)))
		}
	}
}

// load reads and decodes the file. A missing file is not an error: the
// writer may not have created it yet.
func (f *File) load(path string, emit Emit, logger *logging.Logger) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("snapshot file not present yet", "path", path)
		return
	}
	if err != nil {
		emit(failure(f.Name(), errors.NewFeedError("reading snapshot", err).WithSource("file").WithTarget(path)))
		return
	}

	entries, err := leaderboard.Decode(data)
	if err != nil {
		// A half-written file is routinely seen mid-save; the next event
		// delivers the complete document.
		logger.Warn("snapshot did not decode", "path", path, "error", err)
		emit(failure(f.Name(), err))
		return
	}
	logger.Debug("snapshot loaded", "path", path, "entries", len(entries))
	emit(snapshot(f.Name(), entries))
}
