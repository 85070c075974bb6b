package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"tasktree/internal/config"
)

// debounceDelay holds change notifications back briefly so a file is not
// read mid-write. This is a heuristic: a slower writer can still race the
// read, in which case the next change event refreshes the item again.
const debounceDelay = 100 * time.Millisecond

// Watch streams debounced change notifications for candidate files under
// cfg.Root until ctx is cancelled. Each value on the channel is the path of
// a changed, created, renamed, or removed file matching the include pattern;
// callers feed them to [Index.Update]. The channel is closed when ctx is
// done or the watcher fails unrecoverably.
func Watch(ctx context.Context, cfg config.Config) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	var closeOnce sync.Once

	closeWatcher := func() {
		closeOnce.Do(func() {
			err := watcher.Close()
			if err != nil {
				log.WithField("cause", err).Warning("Closing watcher failed")
			}
		})
	}

	dirs := collectDirs(cfg.Root, cfg.Exclude)
	for _, dir := range dirs {
		err = watcher.Add(dir)
		if err != nil {
			closeWatcher()

			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	changes := make(chan string, 64)

	go func() {
		defer close(changes)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(path string) {
			select {
			case changes <- path:
			default:
				// Drop when the consumer lags; the next event for the
				// path refreshes it anyway.
			}
		}

		throttle := newThrottle(debounceDelay)
		defer throttle.stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				log.WithField("cause", err).Warning("Watcher error")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					info, statErr := os.Stat(evt.Name)
					if statErr == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found && !skipDir(filepath.Base(dir), cfg.Exclude) {
							addErr := watcher.Add(dir)
							if addErr != nil {
								log.WithFields(log.Fields{"dir": dir, "cause": addErr}).Warning("Cannot watch new directory")
							} else {
								watched[dir] = struct{}{}
							}
						}

						continue
					}
				}

				if candidatePath(evt.Name, cfg) {
					throttle.enqueue(canonical(evt.Name), send)
				}
			}
		}
	}()

	return changes, nil
}

// candidatePath reports whether a changed path belongs to the watched set:
// its name matches the include pattern and no path component under the root
// is excluded.
func candidatePath(path string, cfg config.Config) bool {
	match, err := filepath.Match(cfg.Include, filepath.Base(path))
	if err != nil || !match {
		return false
	}

	rel, err := filepath.Rel(cfg.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}

	parts := strings.Split(filepath.Dir(rel), string(os.PathSeparator))
	for _, part := range parts {
		if part == "." || part == "" {
			continue
		}

		if skipDir(part, cfg.Exclude) {
			return false
		}
	}

	return true
}

// collectDirs enumerates root and every non-excluded subdirectory. Errors on
// individual subtrees are logged and skipped, matching the scanner's
// tolerance.
func collectDirs(root string, exclude []string) []string {
	dirs := []string{root}

	entries, err := os.ReadDir(root)
	if err != nil {
		log.WithFields(log.Fields{"dir": root, "cause": err}).Warning("Cannot enumerate directory for watching")

		return dirs
	}

	for _, entry := range entries {
		if entry.IsDir() && !skipDir(entry.Name(), exclude) {
			dirs = append(dirs, collectDirs(filepath.Join(root, entry.Name()), exclude)...)
		}
	}

	return dirs
}

// throttle coalesces rapid change notifications per path so one burst of
// filesystem activity yields one refresh per file.
type throttle struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending map[string]struct{}
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{
		delay:   delay,
		pending: map[string]struct{}{},
	}
}

func (t *throttle) enqueue(path string, send func(string)) {
	t.mu.Lock()
	t.pending[path] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *throttle) flush(send func(string)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = map[string]struct{}{}
	t.timer = nil
	t.mu.Unlock()

	for path := range pending {
		send(path)
	}
}

func (t *throttle) stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
