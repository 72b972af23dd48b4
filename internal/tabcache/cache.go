// Package tabcache memoizes per-tab datasets for the lifetime of a session.
package tabcache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/leapstack-labs/signalboard/pkg/core"
)

// Fetcher loads a tab's dataset. *loader.Loader satisfies it.
type Fetcher interface {
	LoadTab(ctx context.Context, tabID string) (*core.Dataset, error)
}

// Cache fetches each tab at most once and hands out the stored dataset on
// later requests. Failed fetches are not stored, so a later request retries.
//
// Callers must treat returned datasets as read-only; derive copies with
// Dataset.Clone before changing anything.
type Cache struct {
	fetcher Fetcher

	mu      sync.RWMutex
	entries map[string]*core.Dataset

	inflight singleflight.Group
}

// New creates an empty cache backed by fetcher.
func New(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		entries: make(map[string]*core.Dataset),
	}
}

// Get returns the dataset for tabID, fetching it on first use.
// Concurrent first requests for the same tab share one fetch. The shared
// fetch is detached from any single caller's cancellation; a caller whose ctx
// ends stops waiting and gets ctx.Err() while the fetch continues for the rest.
func (c *Cache) Get(ctx context.Context, tabID string) (*core.Dataset, error) {
	if data, ok := c.lookup(tabID); ok {
		return data, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(tabID, func() (any, error) {
		// A fetch that completed between lookup and DoChan already stored the entry.
		if data, ok := c.lookup(tabID); ok {
			return data, nil
		}

		data, err := c.fetcher.LoadTab(fetchCtx, tabID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[tabID] = data
		c.mu.Unlock()
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*core.Dataset), nil
	}
}

// Cached reports whether tabID is already stored.
func (c *Cache) Cached(tabID string) bool {
	_, ok := c.lookup(tabID)
	return ok
}

// Invalidate drops the stored dataset for tabID.
func (c *Cache) Invalidate(tabID string) {
	c.mu.Lock()
	delete(c.entries, tabID)
	c.mu.Unlock()
}

// Reset drops every stored dataset.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*core.Dataset)
	c.mu.Unlock()
}

// Len returns the number of stored datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(tabID string) (*core.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[tabID]
	return data, ok
}
