package main

import (
	"context"
	"sync"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/fetch"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

// listCache holds the most recently fetched complaint list per cache key,
// one key per session and view. Each entry carries its own fetch token
// sequence so that a slow refresh finishing after a newer one cannot
// overwrite the newer result.
type listCache struct {
	mu      sync.Mutex
	entries map[string]*listCacheEntry
}

type listCacheEntry struct {
	tokens fetch.Tokens
	items  []models.ComplaintSummary
}

func newListCache() *listCache {
	return &listCache{entries: make(map[string]*listCacheEntry)}
}

func (c *listCache) entry(key string) *listCacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &listCacheEntry{}
		c.entries[key] = e
	}
	return e
}

// Refresh fetches a fresh list and stores it unless a newer refresh has
// started in the meantime. It returns the winning list either way.
func (c *listCache) Refresh(
	ctx context.Context,
	key string,
	fetchList func(context.Context) ([]models.ComplaintSummary, error),
) ([]models.ComplaintSummary, error) {
	e := c.entry(key)
	token := e.tokens.Next()

	items, err := fetchList(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !e.tokens.Latest(token) {
		// A newer fetch won the race; its result stands.
		return e.items, nil
	}
	e.items = items
	return items, nil
}

// Items returns the cached list for the key without fetching.
func (c *listCache) Items(key string) ([]models.ComplaintSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.items == nil {
		return nil, false
	}
	return e.items, true
}

// Drop discards the cached list behind a key, e.g. on logout.
func (c *listCache) Drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
