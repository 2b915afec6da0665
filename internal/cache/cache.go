// Package cache provides the in-memory caches backing interactive searches:
// a bounded result cache keyed by message ID and an LRU volunteer cache.
package cache

import (
	"fmt"
	"time"

	"github.com/usestring/scribebot/internal/session"
)

// ResultCache is a bounded store of search sessions keyed by the ID of the
// message that displays them.
//
// Eviction removes the entry with the oldest write time. Reads deliberately
// do not refresh that time: a session that is read often but never
// re-paginated ages out like any other. This keeps eviction order a pure
// function of writes and makes it cheap to reason about.
//
// ResultCache is not safe for concurrent use. The bot dispatches one event
// at a time, so every cache mutation completes before the next handler runs.
type ResultCache struct {
	capacity int
	entries  map[string]*session.Entry
}

// NewResultCache creates a result cache holding at most capacity sessions.
func NewResultCache(capacity int) (*ResultCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("result cache capacity must be positive, got %d", capacity)
	}
	return &ResultCache{
		capacity: capacity,
		entries:  make(map[string]*session.Entry),
	}, nil
}

// Set inserts or overwrites the entry under key, stamping it with now.
// If the insertion pushes the cache past capacity, the single entry with the
// smallest LastUpdated is removed; ties break on the smaller key.
func (c *ResultCache) Set(key string, entry *session.Entry, now time.Time) {
	stored := entry.Clone()
	stored.LastUpdated = now
	c.entries[key] = stored

	if len(c.entries) <= c.capacity {
		return
	}

	oldestKey := ""
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.LastUpdated.Before(oldest) ||
			(e.LastUpdated.Equal(oldest) && k < oldestKey) {
			oldestKey = k
			oldest = e.LastUpdated
		}
	}
	delete(c.entries, oldestKey)
}

// Get returns a copy of the entry under key, or false if there is none.
// Mutating the returned entry does not affect the cache, and reading does
// not change eviction order.
func (c *ResultCache) Get(key string) (*session.Entry, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Clone(), true
}

// Len returns the current number of cached sessions.
func (c *ResultCache) Len() int {
	return len(c.entries)
}
