package file

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/geosearch/internal/logger"
)

// DefaultSettle is how long the watcher waits after the last write before
// reporting a change. Editors often write a file in several steps.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports changes to a single configuration file.
// The parent directory is watched so atomic replace-by-rename is seen.
type Watcher struct {
	path    string
	settle  time.Duration
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// NewWatcher watches path. It does not start delivering until Run.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		path:    filepath.Clean(path),
		settle:  DefaultSettle,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// SetSettle overrides the settle delay.
func (w *Watcher) SetSettle(d time.Duration) {
	w.mu.Lock()
	w.settle = d
	w.mu.Unlock()
}

// Run calls onChange after the file settles, until ctx is done or Close is
// called. onChange runs on a timer goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case <-w.done:
			w.stopTimer()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				w.schedule(onChange)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// handleEvent reports whether event changes the watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) schedule(onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, func() {
		logger.Debug("config file changed: %s", w.path)
		onChange()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
