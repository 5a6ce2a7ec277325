package shader

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/logger"
)

// Reloader rebuilds a program from its files on a fixed interval. With a
// file watcher attached it only rebuilds after one of the files changed;
// without one every interval rebuilds. Tick must be called from the thread
// that owns the rendering context.
type Reloader struct {
	prog     *Program
	vert     string
	frag     string
	interval time.Duration
	last     time.Time

	watcher *fsnotify.Watcher
	dirty   atomic.Bool
	done    chan struct{}
	zl      *zap.Logger
}

// NewReloader creates a reloader for prog. When watch is set, the
// directories holding vert and frag are watched for changes; if the
// watcher cannot start, the reloader falls back to rebuilding every
// interval.
func NewReloader(prog *Program, vert, frag string, interval time.Duration, watch bool) *Reloader {
	r := &Reloader{
		prog:     prog,
		vert:     vert,
		frag:     frag,
		interval: interval,
		zl:       logger.Named("shader"),
	}
	if watch {
		if err := r.startWatcher(); err != nil {
			r.zl.Warn("shader watcher unavailable, polling instead", zap.Error(err))
		}
	}
	return r
}

// Watching reports whether a file watcher is active.
func (r *Reloader) Watching() bool {
	return r.watcher != nil
}

// Pending reports whether a change is waiting to be rebuilt.
func (r *Reloader) Pending() bool {
	return r.watcher == nil || r.dirty.Load()
}

// Tick rebuilds the program if the interval has elapsed since the last
// rebuild and, when watching, a file changed. It reports whether a rebuild
// happened.
func (r *Reloader) Tick(now time.Time) bool {
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return false
	}
	if r.watcher != nil && !r.dirty.Swap(false) {
		return false
	}
	r.last = now
	r.prog.Reload(r.vert, r.frag)
	return true
}

// Close stops the watcher.
func (r *Reloader) Close() error {
	if r.watcher == nil {
		return nil
	}
	close(r.done)
	err := r.watcher.Close()
	r.watcher = nil
	return err
}

func (r *Reloader) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	targets := make(map[string]bool)
	for _, path := range []string{r.vert, r.frag} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			w.Close()
			return err
		}
		targets[abs] = true
		// Editors often replace files, so watch the directory.
		if err := w.Add(filepath.Dir(abs)); err != nil {
			w.Close()
			return err
		}
	}

	r.watcher = w
	r.done = make(chan struct{})
	go r.watch(w, r.done, targets)
	return nil
}

func (r *Reloader) watch(w *fsnotify.Watcher, done chan struct{}, targets map[string]bool) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				r.dirty.Store(true)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.zl.Warn("shader watcher error", zap.Error(err))
		}
	}
}
