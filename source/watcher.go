package source

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures source file watching for automatic re-loads.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before signaling.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:       false,
		DebounceDelay: 500 * time.Millisecond,
	}
}

// Watcher watches the directories containing source files and signals when
// any tabular source changes. A full re-materialization is idempotent, so
// the watcher does not distinguish which file changed; it coalesces bursts
// of events into one signal per debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	exts     map[string]bool
	reloads  chan struct{}
}

// NewWatcher creates a watcher over the directories of the given source
// files. Only changes to files with a watched extension trigger a signal.
func NewWatcher(config WatchConfig, paths []string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	dirs := make(map[string]bool)
	exts := make(map[string]bool)
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
		if ext := strings.ToLower(filepath.Ext(p)); ext != "" {
			exts[ext] = true
		}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	debounce := config.DebounceDelay
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		exts:     exts,
		reloads:  make(chan struct{}, 1),
	}, nil
}

// Reloads returns the channel signaled after each debounced change burst.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Start begins watching until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
	w.logger.Info("source watcher started", "debounce", w.debounce)
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.reloads)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.reloads <- struct{}{}:
			default:
				// A reload is already pending.
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(event.Name))]
}
