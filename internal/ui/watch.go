package ui

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
)

const watchDebounce = 100 * time.Millisecond

// changeSet collects file changes between debounce flushes.
type changeSet struct {
	mu     sync.Mutex
	reload bool
	tabs   []string
}

// add records a changed file and reports whether it is a dashboard resource.
func (c *changeSet) add(name string) bool {
	base := filepath.Base(name)
	if filepath.Ext(base) != ".json" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch base {
	case loader.ConfigPath, loader.CatalogPath:
		c.reload = true
	default:
		tab := strings.TrimSuffix(base, ".json")
		if !slices.Contains(c.tabs, tab) {
			c.tabs = append(c.tabs, tab)
		}
	}
	return true
}

// take returns the collected event and resets the set.
func (c *changeSet) take() notifier.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	ev := notifier.Event{Kind: notifier.DataChanged, Tabs: c.tabs}
	if c.reload {
		ev = notifier.Event{Kind: notifier.Reload}
	}
	c.reload = false
	c.tabs = nil
	return ev
}

// watchData watches the data directory and pushes changes to open pages.
func (s *Server) watchData(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dataDir); err != nil {
		s.logger.Error("failed to watch data directory", "dir", s.dataDir, "error", err)
		// Keep serving without live reload.
	}

	var (
		changes       changeSet
		debounceTimer *time.Timer
	)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !changes.add(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.publish(changes.take())
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// publish drops stale cached data and notifies every open page.
func (s *Server) publish(ev notifier.Event) {
	if ev.Kind == notifier.DataChanged && len(ev.Tabs) == 0 {
		return
	}
	s.logger.Debug("data changed", "kind", ev.Kind.String(), "tabs", ev.Tabs)

	if ev.Kind == notifier.Reload {
		s.registry.Invalidate()
	} else {
		s.registry.Invalidate(ev.Tabs...)
	}
	s.notifier.Broadcast(ev)
}
