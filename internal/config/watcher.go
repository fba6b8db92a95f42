package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the poll interval when the configuration file changes.
// Every other option is fixed for the lifetime of the process.
type Watcher struct {
	logger *zap.Logger
	cfg    *AppConfig
	mu     sync.Mutex
	fs     *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the file behind cfg
func NewWatcher(logger *zap.Logger, cfg *AppConfig) *Watcher {
	return &Watcher{logger: logger, cfg: cfg}
}

// Start begins watching in a background goroutine. It returns immediately.
// A missing config directory is not an error; hot reload is simply disabled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fs != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	// Watch the directory: editors usually replace the file instead of writing it in place
	dir := filepath.Dir(w.cfg.FilePath())
	if err := fw.Add(dir); err != nil {
		w.logger.Info("Config hot reload disabled", zap.String("dir", dir), zap.Error(err))
		_ = fw.Close()
		return nil
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.fs = fw
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(watchCtx, fw)

	w.logger.Debug("Watching configuration", zap.String("path", w.cfg.FilePath()))
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()

	target := filepath.Clean(w.cfg.FilePath())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}

// reload re-reads the file and applies a changed update_interval
func (w *Watcher) reload() {
	raw, err := readFile(w.cfg.FilePath())
	if err != nil {
		w.logger.Warn("Config reload failed, keeping current values", zap.Error(err))
		return
	}

	d, ok := seconds(raw.UpdateInterval)
	if !ok || d == w.cfg.UpdateInterval() {
		return
	}

	w.cfg.SetUpdateInterval(d)
	w.logger.Info("Update interval reloaded", zap.Duration("updateInterval", d))
}

// Stop ends the watch loop and releases the underlying watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fw, cancel := w.fs, w.cancel
	w.fs, w.cancel = nil, nil
	w.mu.Unlock()

	if fw == nil {
		return nil
	}

	cancel()
	err := fw.Close()
	w.wg.Wait()
	return err
}
