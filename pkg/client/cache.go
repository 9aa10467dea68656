package client

import (
	"strings"
	"sync"
	"time"
)

// Key identifies a cached query: entity, then an optional scope such as
// "list" or "item" and its argument.
type Key []string

func (k Key) String() string { return strings.Join(k, "\x00") }

func listKey(entity, filter string) Key { return Key{entity, "list", filter} }
func itemKey(entity, id string) Key     { return Key{entity, "item", id} }
func singletonKey(entity string) Key    { return Key{entity} }

type entry struct {
	raw     []byte
	expires time.Time
}

// cache holds raw JSON bodies. Each entity carries a generation that moves
// on every invalidation, so a fetch that started before a mutation does not
// store its stale result.
type cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
	gens    map[string]uint64
}

func newCache(ttl time.Duration) *cache {
	return &cache{ttl: ttl, now: time.Now, entries: map[string]entry{}, gens: map[string]uint64{}}
}

func (c *cache) get(k Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k.String()]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().After(e.expires) {
		delete(c.entries, k.String())
		return nil, false
	}
	return e.raw, true
}

func (c *cache) generation(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[entity]
}

// put stores raw unless entity was invalidated since gen was read.
func (c *cache) put(k Key, gen uint64, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[k[0]] != gen {
		return
	}
	c.entries[k.String()] = entry{raw: raw, expires: c.now().Add(c.ttl)}
}

// invalidate drops every key that starts with one of prefixes and bumps
// the generation of their entities.
func (c *cache) invalidate(prefixes ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range prefixes {
		c.gens[p[0]]++
		ps := p.String()
		for k := range c.entries {
			if k == ps || strings.HasPrefix(k, ps+"\x00") {
				delete(c.entries, k)
			}
		}
	}
}

func (c *cache) has(k Key) bool {
	_, ok := c.get(k)
	return ok
}

func (c *cache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		delete(c.entries, k)
	}
	for e := range c.gens {
		c.gens[e]++
	}
}
