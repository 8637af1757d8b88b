package cloudconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultWatchDebounce coalesces bursts of file events into a single reload
const DefaultWatchDebounce = 500 * time.Millisecond

// Watcher reloads a registry when its configuration files change
type Watcher struct {
	registry *Registry
	paths    map[string]struct{}
	debounce time.Duration
	reloaded chan error
}

// NewWatcher creates a watcher for the registry's loader files
func NewWatcher(registry *Registry, debounce time.Duration) (*Watcher, error) {
	if registry.loader == nil {
		return nil, ErrNoLoader
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	paths := make(map[string]struct{})
	for _, p := range registry.loader.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve watch path %s: %w", p, err)
		}
		paths[abs] = struct{}{}
	}

	return &Watcher{
		registry: registry,
		paths:    paths,
		debounce: debounce,
		reloaded: make(chan error, 1),
	}, nil
}

// Reloaded delivers the result of each reload the watcher performs. Results
// are dropped when nobody is listening.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Run watches until the context is cancelled. Directories are watched rather
// than files so that atomic renames by editors and config management are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	log.Info().Int("files", len(w.paths)).Dur("debounce", w.debounce).Msg("watching cloud configuration")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("configuration file changed")
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			err := w.registry.Reload()
			if err != nil {
				log.Error().Err(err).Msg("reload after file change failed")
			}
			select {
			case w.reloaded <- err:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.paths[abs]
	return ok
}
