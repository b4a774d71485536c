// Package watch re-runs the conversion pipeline whenever one of its
// input documents changes on disk. Rapid bursts of writes are debounced
// into a single re-run.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Runner watches a set of files and invokes a callback after changes.
type Runner struct {
	paths    []string
	debounce time.Duration
	run      func() error
	logger   zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Runner for the given paths. Empty paths are ignored.
func New(paths []string, run func() error) *Runner {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return &Runner{
		paths:    paths,
		debounce: 200 * time.Millisecond,
		run:      run,
		logger:   logger,
	}
}

// Watch blocks until the context is done, invoking the callback
// (debounced) after every write or create of a watched file. The parent
// directories are watched so that editors replacing files atomically
// still trigger.
func (r *Runner) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range r.paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (r *Runner) schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		if err := r.run(); err != nil {
			r.logger.Error().Err(err).Msg("re-run failed")
		}
	})
}
