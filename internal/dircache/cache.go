// Package dircache holds a read-mostly, time-bounded cache of directory
// group data. Workers resolve ownership identities against it on the hot
// path; the external directory service is only touched by Warm.
package dircache

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/identity"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/logger"
)

// DefaultTTL is how long an entry is served before it is considered stale.
const DefaultTTL = 300 * time.Second

// Entry is one cached group with its membership and expiry.
type Entry struct {
	Key       string
	Members   []string
	ExpiresAt time.Time
}

// Cache caches group membership and the resolved directory domain.
// Entries are mutated only inside Warm, under the write lock. Concurrent
// Warm calls collapse into a single in-flight refresh; late callers wait
// on its result instead of duplicating the external fetches.
type Cache struct {
	provider identity.Provider
	groups   []string
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]Entry
	domain  string

	flight singleflight.Group
}

// New builds a cache that will warm the given group keys. A ttl of zero
// selects DefaultTTL.
func New(provider identity.Provider, groups []string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		provider: provider,
		groups:   groups,
		ttl:      ttl,
		entries:  make(map[string]Entry),
	}
}

// Warm bulk-fetches every configured group that is missing or stale, plus
// the directory domain. With force set, all entries are refreshed whether
// stale or not. Warm is idempotent and safe to call concurrently.
//
// On provider failure the error is returned but previously cached entries
// are kept: stale-but-available beats empty.
func (c *Cache) Warm(force bool) error {
	_, err, _ := c.flight.Do("warm", func() (interface{}, error) {
		return nil, c.refresh(force)
	})
	return err
}

func (c *Cache) refresh(force bool) error {
	stale := c.staleGroups(force)
	if len(stale) == 0 && c.Domain() != "" {
		return nil
	}
	logger.Get().Debug().Int("groups", len(stale)).Bool("force", force).Msg("warming directory cache")

	fetched := make(map[string][]string, len(stale))
	var firstErr error
	for _, key := range stale {
		members, err := c.provider.FetchGroup(key)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch group %q: %w", key, err)
			}
			continue
		}
		fetched[key] = members
	}

	domain, domainErr := c.provider.Domain()

	c.mu.Lock()
	now := time.Now()
	for key, members := range fetched {
		c.entries[key] = Entry{
			Key:       key,
			Members:   members,
			ExpiresAt: now.Add(c.ttl),
		}
	}
	if domainErr == nil {
		c.domain = domain
	}
	c.mu.Unlock()

	if firstErr != nil {
		return firstErr
	}
	if domainErr != nil && c.Domain() == "" {
		return fmt.Errorf("resolve domain: %w", domainErr)
	}
	return nil
}

// staleGroups lists the groups Warm should re-fetch.
func (c *Cache) staleGroups(force bool) []string {
	if force {
		return c.groups
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	var stale []string
	for _, key := range c.groups {
		e, ok := c.entries[key]
		if !ok || !e.ExpiresAt.After(now) {
			stale = append(stale, key)
		}
	}
	return stale
}

// Lookup returns the cached entry for key if present and unexpired.
// A miss returns the zero Entry and false; callers fall back to a generic
// identity rather than blocking on a directory round trip.
func (c *Cache) Lookup(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.ExpiresAt.After(time.Now()) {
		return Entry{}, false
	}
	return e, true
}

// ResolveRandomMember draws one member pseudo-randomly from a cached
// group. It reports false on a cache miss or an empty group.
func (c *Cache) ResolveRandomMember(groupKey string) (string, bool) {
	e, ok := c.Lookup(groupKey)
	if !ok || len(e.Members) == 0 {
		return "", false
	}
	return e.Members[rand.Intn(len(e.Members))], true
}

// Domain returns the cached directory domain, or "" if never resolved.
func (c *Cache) Domain() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.domain
}

// Invalidate expires every entry immediately. The next Warm refreshes
// them all.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		e.ExpiresAt = time.Time{}
		c.entries[key] = e
	}
}
