// Package watch observes a journal data directory and reports new or
// rewritten metadata files, so a corpus can be rebuilt incrementally as
// archives are unpacked into it.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long a changed file must stay quiet before it is
// reported. Archive extraction writes files in bursts; debouncing folds a
// burst into one notification batch.
const DefaultDebounce = 2 * time.Second

// Config configures a directory watcher.
type Config struct {
	// Root is the data directory to watch, recursively.
	Root string

	// Debounce is the quiet period before changed files are reported.
	// Zero means DefaultDebounce.
	Debounce time.Duration

	// OnChange receives each settled batch of metadata paths, sorted.
	OnChange func(paths []string)
}

// Watcher reports metadata-file changes below a directory tree.
type Watcher struct {
	config   Config
	notifier *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]time.Time

	done chan struct{}
	once sync.Once
}

// New creates a watcher over the configured root. Existing subdirectories
// are registered immediately; directories created later are picked up from
// their create events.
func New(config Config) (*Watcher, error) {
	if config.Root == "" {
		return nil, fmt.Errorf("watch root is required")
	}
	if config.OnChange == nil {
		return nil, fmt.Errorf("OnChange callback is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	watcher := &Watcher{
		config:   config,
		notifier: notifier,
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}

	if err := watcher.addTree(config.Root); err != nil {
		notifier.Close()
		return nil, err
	}

	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Pending batches are dropped.
func (watcher *Watcher) Close() error {
	watcher.once.Do(func() { close(watcher.done) })
	return watcher.notifier.Close()
}

// addTree registers a directory and all its subdirectories.
func (watcher *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if entry.IsDir() {
			if err := watcher.notifier.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (watcher *Watcher) run() {
	ticker := time.NewTicker(watcher.config.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-watcher.done:
			return

		case event, ok := <-watcher.notifier.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)

		case _, ok := <-watcher.notifier.Errors:
			if !ok {
				return
			}

		case now := <-ticker.C:
			watcher.flush(now)
		}
	}
}

func (watcher *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	// New directories appear as create events; watch them too.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			watcher.addTree(event.Name)
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".doc.xml") {
		return
	}

	watcher.mu.Lock()
	watcher.pending[event.Name] = time.Now()
	watcher.mu.Unlock()
}

// flush reports the files whose last event is older than the debounce
// window.
func (watcher *Watcher) flush(now time.Time) {
	watcher.mu.Lock()
	var settled []string
	for path, lastEvent := range watcher.pending {
		if now.Sub(lastEvent) >= watcher.config.Debounce {
			settled = append(settled, path)
			delete(watcher.pending, path)
		}
	}
	watcher.mu.Unlock()

	if len(settled) == 0 {
		return
	}
	sort.Strings(settled)
	watcher.config.OnChange(settled)
}
