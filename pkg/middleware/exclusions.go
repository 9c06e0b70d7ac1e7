package middleware

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// exclusionDebounce is the quiet period after a file event before the
// exclusion file is reloaded, so editors that write in several steps
// trigger one reload instead of a storm.
const exclusionDebounce = 100 * time.Millisecond

// ExclusionList holds path patterns that instrumentation skips.
// A pattern matches exactly, or as a prefix when it ends with "*".
// The list is safe for concurrent use and supports hot reload from a
// watched YAML file.
type ExclusionList struct {
	logger *slog.Logger

	mu     sync.RWMutex
	static []string
	loaded []string

	watcher  *fsnotify.Watcher
	debounce *debouncer
	stopCh   chan struct{}
	doneCh   chan struct{}
	watching bool
}

// exclusionFile is the on-disk YAML shape.
type exclusionFile struct {
	Exclusions []string `yaml:"exclusions"`
}

// NewExclusionList creates a list with a static pattern set.
func NewExclusionList(patterns []string, logger *slog.Logger) *ExclusionList {
	if logger == nil {
		logger = slog.Default().With("component", "middleware.exclusions")
	}
	static := make([]string, len(patterns))
	copy(static, patterns)
	return &ExclusionList{
		logger: logger,
		static: static,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Match reports whether path is excluded from instrumentation.
func (e *ExclusionList) Match(path string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.static {
		if matchPattern(p, path) {
			return true
		}
	}
	for _, p := range e.loaded {
		if matchPattern(p, path) {
			return true
		}
	}
	return false
}

// Patterns returns the combined pattern set, static first.
func (e *ExclusionList) Patterns() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.static)+len(e.loaded))
	out = append(out, e.static...)
	out = append(out, e.loaded...)
	return out
}

// WatchFile loads patterns from path and reloads them whenever the file
// changes. The initial load must succeed; later reload failures are
// logged and leave the previous patterns in place.
func (e *ExclusionList) WatchFile(path string) error {
	if err := e.loadFile(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}

	e.mu.Lock()
	e.watcher = watcher
	e.debounce = newDebouncer(exclusionDebounce)
	e.watching = true
	e.mu.Unlock()

	go e.watchLoop(path)

	e.logger.Info("exclusion file watcher started", "path", path)
	return nil
}

// Close stops the watcher, if running.
func (e *ExclusionList) Close() error {
	e.mu.Lock()
	if !e.watching {
		e.mu.Unlock()
		return nil
	}
	e.watching = false
	e.mu.Unlock()

	close(e.stopCh)
	<-e.doneCh
	e.debounce.stop()
	return e.watcher.Close()
}

func (e *ExclusionList) watchLoop(path string) {
	defer close(e.doneCh)

	for {
		select {
		case <-e.stopCh:
			return

		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			e.debounce.trigger(func() {
				if err := e.loadFile(path); err != nil {
					e.logger.Error("exclusion reload failed, keeping previous patterns",
						"path", path,
						"error", err,
					)
					return
				}
				e.logger.Info("exclusion patterns reloaded", "path", path)
			})
			// Editors often replace the file; re-add the watch so the
			// new inode keeps producing events.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				e.watcher.Add(path)
			}

		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("exclusion watcher error", "error", err)
		}
	}
}

func (e *ExclusionList) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read exclusion file: %w", err)
	}

	var file exclusionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse exclusion file: %w", err)
	}

	patterns := make([]string, 0, len(file.Exclusions))
	for _, p := range file.Exclusions {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}

	e.mu.Lock()
	e.loaded = patterns
	e.mu.Unlock()
	return nil
}

// matchPattern matches exactly, or by prefix for trailing-"*" patterns.
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == path
}

// debouncer collapses rapid file events into one callback after a quiet
// period.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopCh   chan struct{}
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}
		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
