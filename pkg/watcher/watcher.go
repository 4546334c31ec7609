// Package watcher re-runs work when a chart document changes on disk.
package watcher

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

// Watcher calls a function whenever one file changes.
//
// The file's directory is watched rather than the file itself, so saves
// that replace the file (write to a temp file, then rename) are seen too.
type Watcher struct {
	path     string
	onChange func(ctx context.Context, path string)
	debounce *Debouncer
	logger   *log.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = NewDebouncer(d) }
}

// WithLogger sets the logger for watch errors and events.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for path. onChange runs on a timer goroutine once
// a burst of events has settled.
func New(path string, onChange func(ctx context.Context, path string), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}
	w := &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: NewDebouncer(0),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", dir)
	}
	w.logger.Debug("watching", "path", w.path)

	defer w.debounce.Cancel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
			w.debounce.Trigger(func() {
				if ctx.Err() == nil {
					w.onChange(ctx, w.path)
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
