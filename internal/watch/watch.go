// Package watch follows a repository's metadata directory and turns
// filesystem events into refresh signals, so watch mode re-renders the
// prompt only when the repository actually changes.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chmouel/vcprompt/internal/log"
)

// Debounce is the minimum interval between two refreshes.
const Debounce = 600 * time.Millisecond

// Watcher coalesces events on the metadata directory into a buffered
// one-slot signal channel.
type Watcher struct {
	mu          sync.Mutex
	fsw         *fsnotify.Watcher
	started     bool
	roots       []string
	paths       map[string]struct{}
	events      chan struct{}
	done        chan struct{}
	lastRefresh time.Time
}

// New returns an idle watcher.
func New() *Watcher {
	return &Watcher{}
}

// Start watches metaDir itself plus every directory under trees.
// Directories created later under a watched parent are picked up as
// they appear.
func (w *Watcher) Start(metaDir string, trees []string) error {
	if w.started {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	w.started = true
	w.fsw = fsw
	w.roots = trees
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})

	w.addWatchDir(metaDir)
	for _, root := range trees {
		w.addWatchTree(root)
	}

	go w.run()
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	w.started = false
	close(w.done)
	if w.fsw != nil {
		_ = w.fsw.Close()
	}
}

// Events returns the signal channel. Only valid after Start.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// ShouldRefresh gates refreshes to at most one per debounce window.
func (w *Watcher) ShouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < Debounce {
		return false
	}
	w.lastRefresh = now
	return true
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			w.signal()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Debugf("watch: %v", err)
		}
	}
}

// maybeWatchNewDir registers directories created under a watch root.
func (w *Watcher) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

func (w *Watcher) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) isUnderRoot(path string) bool {
	if path == "" {
		return false
	}
	for _, root := range w.roots {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		log.Debugf("watch: add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *Watcher) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}
