package ignore

import "sync"

// Cache holds one Matcher per root. Entries are dropped with Invalidate or
// Clear so edits to ignore files are picked up on the next build.
type Cache struct {
	mu       sync.RWMutex
	matchers map[string]*Matcher
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{matchers: make(map[string]*Matcher)}
}

// Get returns the matcher for root, calling build when none is cached.
// build runs without the lock held; if another caller stored a matcher in
// the meantime, that one is kept.
func (c *Cache) Get(root string, build func() *Matcher) *Matcher {
	c.mu.RLock()
	m, ok := c.matchers[root]
	c.mu.RUnlock()
	if ok {
		return m
	}

	built := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.matchers[root]; ok {
		return m
	}
	c.matchers[root] = built
	return built
}

// Invalidate drops the matcher for root.
func (c *Cache) Invalidate(root string) {
	c.mu.Lock()
	delete(c.matchers, root)
	c.mu.Unlock()
}

// Clear drops every cached matcher.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.matchers = make(map[string]*Matcher)
	c.mu.Unlock()
}

// Len returns the number of cached matchers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matchers)
}
