// Package fsnotify rebuilds the manifest when the archive directory changes.
package fsnotify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc regenerates the outputs. It is always called from the
// goroutine running Watcher.Run.
type RebuildFunc func(ctx context.Context) error

// Watcher observes an archive directory tree and triggers full rebuilds.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	match     func(path string) bool
	ignore    map[string]bool
	dirs      map[string]bool
	logger    *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithMatch restricts file events to paths accepted by match.
// Creation and removal of watched directories always count as changes.
func WithMatch(match func(path string) bool) Option {
	return func(w *Watcher) {
		w.match = match
	}
}

// WithIgnore drops events for the given files and for the ".tmp" files
// they are written through. Outputs generated inside the watched tree must
// be ignored or every write triggers another rebuild.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				continue
			}
			w.ignore[abs] = true
			w.ignore[abs+".tmp"] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher for the directory tree at root. If root does
// not exist yet, its parent is watched until root appears.
func NewWatcher(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		root:      abs,
		debounce:  DefaultDebounce,
		ignore:    make(map[string]bool),
		dirs:      make(map[string]bool),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	if _, err := os.Stat(abs); err == nil {
		err = w.addRecursive(abs)
	} else {
		err = w.fsWatcher.Add(filepath.Dir(abs))
	}
	if err != nil {
		w.fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive watches root and every directory below it. Paths are kept
// under root as given so that event names stay inside the watched tree even
// when root is a symlink.
func (w *Watcher) addRecursive(root string) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil
	}
	return filepath.WalkDir(resolved, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != resolved && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		dir := filepath.Join(root, rel)
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
		w.logger.Debug("watching directory", "path", dir)
		return nil
	})
}

// Run waits for changes under the root and calls rebuild once per burst of
// events. It returns nil when ctx is cancelled. Rebuild errors are logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("archive changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			if err := rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", "err", err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// relevant reports whether event affects the manifest, adding newly created
// directories to the watch list as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Name != w.root && !strings.HasPrefix(event.Name, w.root+string(filepath.Separator)) {
		return false
	}
	if w.ignore[event.Name] {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("unable to watch new directory", "path", event.Name, "err", err)
			}
			return true
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if w.dirs[event.Name] {
			delete(w.dirs, event.Name)
			return true
		}
	}
	if event.Has(fsnotify.Chmod) {
		return false
	}
	return w.match == nil || w.match(event.Name)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
