package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 50 * time.Millisecond

// Watch reloads fixture files into the repository as they change on
// disk. It returns after the watcher is installed; the reload loop runs
// on a supervised goroutine until ctx is cancelled. Writes to the same
// file within the debounce window collapse into one reload.
func (b *Binding) Watch(ctx context.Context, repositoryID, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	debounce := &debouncer{window: debounceWindow, pending: make(map[string]*time.Timer)}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer watcher.Close()
		defer debounce.stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				ext := filepath.Ext(event.Name)
				if ext != ".yaml" && ext != ".yml" {
					continue
				}
				path := event.Name
				debounce.add(path, func() {
					if err := b.LoadFile(repositoryID, path); err != nil {
						b.debug("fixture reload failed", "path", path, "error", err)
						return
					}
					b.debug("fixture reloaded", "repository", repositoryID, "path", path)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				b.debug("watcher error", "error", err)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		b.debug("watcher stopped", "error", err)
	}))

	return nil
}

// debouncer coalesces repeated triggers for the same key.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

func (d *debouncer) add(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}
	d.pending[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.pending, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}
