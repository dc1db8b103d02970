// Package watch reports when the file backing the open image changes on disk.
package watch

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events an editor produces when it
// saves a file.
const DefaultDelay = 150 * time.Millisecond

// Watcher follows a single file. The containing directory is watched so
// files replaced by rename are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(path string)
	delay    time.Duration

	mu     sync.Mutex
	target string
	dir    string
	timer  *time.Timer
	done   chan struct{}
}

// New starts a watcher that calls onChange from its own goroutine.
func New(onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		fs:       fw,
		onChange: onChange,
		delay:    DefaultDelay,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch makes path the watched file. An empty path stops watching.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path == "" {
		w.unwatchLocked()
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if dir != w.dir {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.unwatchLocked()
		w.dir = dir
	}
	w.target = abs
	return nil
}

// Target returns the absolute path being watched, or "".
func (w *Watcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Close stops the watcher. Pending notifications are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.target = ""
	w.mu.Unlock()
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) unwatchLocked() {
	if w.dir != "" {
		if err := w.fs.Remove(w.dir); err != nil {
			log.Printf("watch: remove %s: %v", w.dir, err)
		}
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.dir = ""
	w.target = ""
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.schedule(filepath.Clean(ev.Name))
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if name != w.target {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	target := w.target
	w.timer = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		current := w.target
		w.mu.Unlock()
		if current == target {
			w.onChange(target)
		}
	})
}
