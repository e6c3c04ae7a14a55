// Package memory is the in-process ListCache driver. Entries expire lazily
// on read.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/domain"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
)

type entry struct {
	records []domain.ClientRecord
	expires time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

var (
	_ store.ListCache = (*Cache)(nil)
	_ store.Sweeper   = (*Cache)(nil)
)

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Cache) Load(_ context.Context, sessionID string) ([]domain.ClientRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, sessionID)
		return nil, store.ErrNotFound
	}
	return slices.Clone(e.records), nil
}

func (c *Cache) Save(_ context.Context, sessionID string, records []domain.ClientRecord, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{records: slices.Clone(records)}
	if e.records == nil {
		e.records = []domain.ClientRecord{}
	}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[sessionID] = e
	return nil
}

func (c *Cache) Invalidate(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
	return nil
}

func (c *Cache) Ping(context.Context) error { return nil }

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	return nil
}

// DeleteExpired drops every expired entry. Sessions that are never read
// again would otherwise stay in memory forever.
func (c *Cache) DeleteExpired(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	deleted := 0
	for id, e := range c.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
