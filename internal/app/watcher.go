package app

import (
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// imageExts are the file extensions the drop folder accepts.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Watcher imports image files dropped into a directory while the session
// is running. Each path is imported at most once per session.
type Watcher struct {
	dir      string
	onImage  func(path string)
	watcher  *fsnotify.Watcher
	imported map[string]bool
	mu       sync.Mutex
	stopCh   chan struct{}
}

// NewWatcher creates a Watcher over dir. onImage is called with the path
// of each newly dropped image file.
func NewWatcher(dir string, onImage func(path string)) *Watcher {
	return &Watcher{
		dir:      dir,
		onImage:  onImage,
		imported: make(map[string]bool),
	}
}

// Start begins watching the drop directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return err
	}

	w.watcher = fw
	w.stopCh = make(chan struct{})
	go w.run(fw, w.stopCh)

	log.Printf("Watching %s for dropped photos", w.dir)
	return nil
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}

	close(w.stopCh)
	w.watcher.Close()
	w.watcher = nil
}

func (w *Watcher) run(fw *fsnotify.Watcher, stopCh chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.handle(event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

// handle imports a dropped file once. Editors and file managers fire
// several events per drop; the imported set collapses them.
func (w *Watcher) handle(path string) {
	if !imageExts[strings.ToLower(filepath.Ext(path))] {
		return
	}

	w.mu.Lock()
	if w.imported[path] {
		w.mu.Unlock()
		return
	}
	w.imported[path] = true
	w.mu.Unlock()

	w.onImage(path)
}
