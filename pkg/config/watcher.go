package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration file for changes and delivers reloaded
// configurations to a callback. Changes are debounced so editors that write
// in multiple steps trigger a single reload. A change that fails to load or
// validate is logged and dropped; the previous configuration stays in effect.
type Watcher struct {
	path     string
	onReload func(*Config)
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the config file at path. onReload is
// invoked with each successfully reloaded configuration.
func NewWatcher(path string, onReload func(*Config), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     path,
		onReload: onReload,
		logger:   logger.With("component", "config.watcher"),
		debounce: 200 * time.Millisecond,
		watcher:  fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so atomic rename-based writes are still observed.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.running = true
	go w.run()

	w.logger.Info("watching configuration file", "path", w.path)
	return nil
}

// run is the watch loop. Events for other files in the directory are ignored.
func (w *Watcher) run() {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", "error", err)
		}
	}
}

// reload re-reads the config file and hands the result to the callback.
func (w *Watcher) reload() {
	cfg, err := LoadConfigWithEnvOverrides(w.path)
	if err != nil {
		w.logger.Error("configuration reload failed, keeping previous configuration",
			"path", w.path,
			"error", err,
		)
		return
	}

	w.logger.Info("configuration reloaded", "path", w.path)
	w.onReload(cfg)
}

// Stop stops the watcher and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
	w.running = false

	w.logger.Info("configuration watcher stopped")
}
