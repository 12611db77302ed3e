package discovery

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

var cleanOnce sync.Once

// cleanStaleOnce runs CleanStale a single time per process, the first time
// Find is ever called. This is best-effort cleanup: it must never block or
// fail discovery itself.
func cleanStaleOnce() {
	cleanOnce.Do(func() {
		if err := CleanStale(); err != nil {
			log.Printf("discovery: stale object sweep: %v", err)
		}
	})
}

// CleanStale removes named objects whose embedded pid names a process
// that no longer exists. It is exported so a long-
// running host process can call it periodically or after observing a
// sibling exit, rather than relying solely on the one-time sweep in Find.
func CleanStale() error {
	dir := baseDir()
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	for _, entry := range entries {
		pid, ok := pidFromFileName(entry.Name())
		if !ok || isProcessAlive(pid) {
			continue
		}

		_ = os.Remove(filepath.Join(dir, entry.Name()))
	}

	return nil
}

// pidFromFileName recovers the pid embedded in a sanitized object name
// (see objectName and sanitizeFileName).
func pidFromFileName(name string) (int, bool) {
	idx := strings.LastIndex(name, "_PID_")
	if idx < 0 {
		return 0, false
	}

	pid, err := strconv.Atoi(name[idx+len("_PID_"):])
	if err != nil {
		return 0, false
	}

	return pid, true
}

// Watcher reacts to new named objects appearing in the base directory by
// re-running CleanStale, so a long-lived process sees dead siblings swept
// promptly instead of only on its own first Find call. fsnotify cannot
// observe a third process's exit directly (nothing deletes that process's
// file when it dies), so this narrows "poll in a tight loop" down to
// "re-scan only when the directory actually changes".
type Watcher struct {
	w *fsnotify.Watcher
}

// StartWatcher begins watching the base directory for new siblings,
// triggering a CleanStale sweep on each one. Callers own the returned
// Watcher and must call Close when done.
func StartWatcher() (*Watcher, error) {
	dir := baseDir()
	if dir == "" {
		return &Watcher{}, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	wch := &Watcher{w: fw}

	go wch.run()

	return wch, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if err := CleanStale(); err != nil {
					log.Printf("discovery: stale object sweep: %v", err)
				}
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}

			log.Printf("discovery: watcher error: %v", err)
		}
	}
}

// Close stops the watcher's background goroutine.
func (w *Watcher) Close() error {
	if w.w == nil {
		return nil
	}

	return w.w.Close()
}
