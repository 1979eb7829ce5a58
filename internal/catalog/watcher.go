package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// EventOp distinguishes catalog update events.
type EventOp int

const (
	// Added means a new image file appeared under the watched tree.
	Added EventOp = iota
	// Removed means a previously present image file went away.
	Removed
)

// Event is a single catalog change detected by the watcher.
type Event struct {
	Op   EventOp
	Path string
}

// Watcher monitors the image directory tree for images being added or
// removed while the slideshow runs. Events are delivered on a buffered
// channel; the consumer applies them between ticks.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan Event
	stopChan  chan struct{}

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher over root and every directory below it.
func NewWatcher(root string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan Event, 64),
		stopChan:  make(chan struct{}),
	}

	if err := w.addTree(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := w.addTree(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Events returns the channel delivering catalog change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins delivering events until Stop is called.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				w.handle(event)

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Error("fsnotify watcher error", "err", err)

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			// The file may already be gone again.
			return
		}
		if info.IsDir() {
			// New subdirectory; watch it so images created inside
			// it are seen too.
			if err := w.fsWatcher.Add(event.Name); err != nil {
				log.Error("failed to watch new directory", "dir", event.Name, "err", err)
			}
			return
		}
		if IsImagePath(event.Name) {
			w.send(Event{Op: Added, Path: event.Name})
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if IsImagePath(event.Name) {
			w.send(Event{Op: Removed, Path: event.Name})
		}
	}
}

func (w *Watcher) send(ev Event) {
	select {
	case w.events <- ev:
	default:
		log.Warn("catalog event channel full, dropped event", "path", ev.Path)
	}
}

// Stop halts event delivery and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.Error("error closing fsnotify watcher", "err", err)
	}
	w.running = false
}
