package speech

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates a backend's cached voice resolution when model files
// appear or disappear under the search-path template directories. Resolution
// itself stays lazy; the watcher only marks it stale.
type Watcher struct {
	fs      *fsnotify.Watcher
	backend *Backend
	done    chan struct{}
}

// NewWatcher starts watching the directories the templates point into.
// Directories that do not exist yet are skipped with a warning.
func NewWatcher(backend *Backend, templates []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := 0
	for _, dir := range templateDirs(templates) {
		if _, err := os.Stat(dir); err != nil {
			log.Warn("not watching missing voice directory", "dir", dir)
			continue
		}
		if err := fsw.Add(dir); err != nil {
			log.Warn("failed to watch voice directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	log.Debug("watching voice directories", "count", watched)

	w := &Watcher{
		fs:      fsw,
		backend: backend,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				log.Debug("voice path changed", "path", ev.Name, "op", ev.Op)
				w.backend.MarkResolutionDirty()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("voice watcher error", "error", err)
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

// templateDirs returns the deepest fixed directory of each template, cut
// before the first path component containing the $VOICE placeholder.
// Duplicates are removed; template order is preserved.
func templateDirs(templates []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, tmpl := range templates {
		dir := fixedPrefix(tmpl)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

func fixedPrefix(template string) string {
	parts := strings.Split(filepath.ToSlash(template), "/")
	var fixed []string
	for _, p := range parts[:len(parts)-1] {
		if strings.Contains(p, VoicePlaceholder) {
			break
		}
		fixed = append(fixed, p)
	}
	if len(fixed) == 0 {
		return ""
	}
	dir := strings.Join(fixed, "/")
	if dir == "" {
		// Template rooted at "/" with the placeholder right below it.
		dir = "/"
	}
	return filepath.FromSlash(dir)
}
