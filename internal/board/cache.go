// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package board

import (
	"strings"
	"sync"
	"time"
)

// Cache keys for the lists the board fetches.
const (
	keyPosts       = "posts"
	keyUsersPrefix = "users/"
)

func usersKey(role string) string { return keyUsersPrefix + role }

type entry struct {
	value    any
	storedAt time.Time
}

// queryCache keeps fetched lists in process memory, keyed by query.
// It lives only as long as the process; mutations invalidate the keys they affect.
type queryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{ttl: ttl, entries: make(map[string]entry), now: time.Now}
}

// get returns the cached value for key unless it is missing or stale.
func (c *queryCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *queryCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// invalidate drops key and every key below it ("users/" drops all roles).
func (c *queryCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == key || (strings.HasSuffix(key, "/") && strings.HasPrefix(k, key)) {
			delete(c.entries, k)
		}
	}
}

func (c *queryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
