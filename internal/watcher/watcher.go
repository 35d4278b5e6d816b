// Package watcher follows a directory tree and reports changed source files
// in debounced batches, so saves can be re-analyzed as they happen.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Event is one source file change.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Handler receives a debounced batch of changed files.
type Handler func(events []Event)

// Config controls what the watcher reports.
type Config struct {
	// Extensions limits events to matching files; empty means all files
	Extensions []string
	// Debounce is the quiet period before a batch is emitted
	Debounce time.Duration
	// IgnoreDirs are directory names skipped entirely
	IgnoreDirs []string
}

// Watcher follows one root directory recursively.
type Watcher struct {
	root    string
	cfg     Config
	handler Handler
	log     zerolog.Logger

	fsw     *fsnotify.Watcher
	batch   *BatchDebouncer
	mu      sync.Mutex
	watched map[string]bool
}

// New creates a watcher over root. Call Run to start it.
func New(root string, cfg Config, handler Handler, log zerolog.Logger) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if len(cfg.IgnoreDirs) == 0 {
		cfg.IgnoreDirs = []string{".git", "node_modules", "vendor", ".aidetect"}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    root,
		cfg:     cfg,
		handler: handler,
		log:     log,
		fsw:     fsw,
		watched: make(map[string]bool),
	}
	w.batch = NewBatchDebouncer(cfg.Debounce, handler)

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.log.Info().Str("root", w.root).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.batch.Flush()
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.ignored(ev.Name) {
				if err := w.addRecursive(ev.Name); err != nil {
					w.log.Warn().Err(err).Str("dir", ev.Name).Msg("watch new directory")
				}
			}
			return
		}
	}

	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return
	}
	if !w.matches(ev.Name) {
		return
	}

	w.batch.Add(Event{Path: ev.Name, Timestamp: time.Now()})
}

// matches reports whether the path passes the extension filter.
func (w *Watcher) matches(path string) bool {
	if w.ignored(path) {
		return false
	}
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.cfg.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		for _, skip := range w.cfg.IgnoreDirs {
			if part == skip {
				return true
			}
		}
	}
	return false
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.mu.Lock()
		w.watched[path] = true
		w.mu.Unlock()
		return nil
	})
}

// WatchedDirs returns how many directories are under watch.
func (w *Watcher) WatchedDirs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}
