package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/oasdocs/document"
)

// specWatcher reloads the document when its file changes. It watches the
// parent directory, so editors that save by writing a temp file and renaming
// it over the original still trigger a reload.
type specWatcher struct {
	path     string
	debounce time.Duration
	logger   document.Logger
	reload   func()
	fsw      *fsnotify.Watcher
}

func newSpecWatcher(path string, debounce time.Duration, logger document.Logger, reload func()) (*specWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("server: resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("server: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("server: watch %s: %w", filepath.Dir(abs), err)
	}
	return &specWatcher{
		path:     filepath.Clean(abs),
		debounce: debounce,
		logger:   logger,
		reload:   reload,
		fsw:      fsw,
	}, nil
}

// run handles fsnotify events until ctx is done. Bursts of events closer than
// the debounce delay collapse into one reload.
func (w *specWatcher) run(ctx context.Context) {
	defer func() { _ = w.fsw.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("spec change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *specWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Watch starts reloading the document whenever its file changes, until ctx
// is done. It returns once the watch is established.
func (s *Server) Watch(ctx context.Context) error {
	if s.static || s.cfg.Spec == "" {
		return fmt.Errorf("server: watch requires a spec file")
	}
	w, err := newSpecWatcher(s.cfg.Spec, s.cfg.Watch.GetDebounce(), s.logger, func() {
		_ = s.Reload()
	})
	if err != nil {
		return err
	}
	go w.run(ctx)

	s.logger.Info("spec watcher started", "spec", s.cfg.Spec, "debounce", s.cfg.Watch.GetDebounce())
	return nil
}
