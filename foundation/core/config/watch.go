// File: watch.go
// Title: File Watching
// Description: Watches files with fsnotify and reports changes after a
//              debounce interval. Used to reload the configuration and to
//              re-parse programs in watch mode.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: fsnotify based watcher with debouncing

package config

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwlog "github.com/msto63/turtle/foundation/core/log"
)

// Watcher reports writes to a fixed set of files. The parent directories
// are watched so that editors which replace files on save are seen too.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *mdwlog.Logger
	files    map[string]struct{}
	dirs     map[string]struct{}
}

// NewWatcher creates a watcher. A nil logger selects the default logger.
func NewWatcher(debounce time.Duration, logger *mdwlog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeIOError).
			WithOperation("config.NewWatcher")
	}
	if logger == nil {
		logger = mdwlog.GetDefault()
	}

	return &Watcher{
		fs:       fs,
		debounce: debounce,
		logger:   logger.WithField("component", "watcher"),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}, nil
}

// Add starts watching path
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to resolve path").
			WithCode(mdwerror.CodeIOError).
			WithOperation("config.Watcher.Add").
			WithDetail("path", path)
	}

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return mdwerror.Wrap(err, "failed to watch directory").
				WithCode(mdwerror.CodeIOError).
				WithOperation("config.Watcher.Add").
				WithDetail("path", dir)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// Files returns the watched files, sorted
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Run delivers changed paths to onChange until ctx is done. Events for the
// same file within the debounce interval are reported once. Run returns
// nil when ctx is canceled.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, watched := w.files[path]; !watched {
				continue
			}

			w.logger.Trace("File event", mdwlog.Fields{"path": path, "op": event.Op.String()})
			pending[path] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("File watcher error", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})

			for _, p := range paths {
				onChange(p)
			}
		}
	}
}

// Close releases the underlying watcher
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// ChangeHandler receives a reloaded configuration or the error that
// prevented reloading it
type ChangeHandler func(cfg *Config, err error)

// Watch reloads the configuration file at path on every change until ctx
// is done
func Watch(ctx context.Context, path string, debounce time.Duration, logger *mdwlog.Logger, handler ChangeHandler) error {
	watcher, err := NewWatcher(debounce, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	return watcher.Run(ctx, func(changed string) {
		cfg, err := Load(changed)
		if err != nil {
			watcher.logger.LogError(err)
		} else {
			watcher.logger.Info("Configuration reloaded", mdwlog.Fields{"path": changed})
		}
		handler(cfg, err)
	})
}
