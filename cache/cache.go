// Package cache implements the engine's process-wide (name, qtype) -> last
// Response mapping.
//
// Unlike the LRU, TTL-aware cache this package is adapted from, entries here
// never expire and are never evicted: the spec mandates TTL-less caching to
// match the behavior of the resolver this was distilled from, so the cache
// grows for the lifetime of the process (see DESIGN.md).
package cache

import (
	"sync"

	"github.com/miekg/dns"
)

// Key identifies a cached Response by the canonical (lowercased,
// fully-qualified) query name and record type.
type Key struct {
	Name  string
	QType uint16
}

func keyFor(name string, qtype uint16) Key {
	return Key{Name: dns.CanonicalName(name), QType: qtype}
}

// Cache is a single process-wide mapping from (canonical name, qtype) to the
// last Response believed authoritative for that key. It is logically
// single-writer; the mutex only exists to let a concurrent caller (this
// repo's CLI resolves several names in parallel goroutines) serialize
// access without corrupting the map.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*dns.Msg
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: map[Key]*dns.Msg{}}
}

// Get returns the cached Response for (name, qtype), if any. The returned
// message is a copy so callers may freely mutate it (e.g. to merge a CNAME
// chain) without corrupting the cached entry.
func (c *Cache) Get(name string, qtype uint16) (*dns.Msg, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.entries[keyFor(name, qtype)]
	if !ok {
		return nil, false
	}
	return m.Copy(), true
}

// Put unconditionally overwrites the cached entry for (name, qtype).
func (c *Cache) Put(name string, qtype uint16, resp *dns.Msg) {
	if resp == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyFor(name, qtype)] = resp.Copy()
}

// PutDelegationHint records the Response that carried a particular NS or
// glue A/AAAA record for owner_name. It is equivalent to Put; the walker
// uses this name to make clear why it's writing to the cache mid-delegation
// rather than for a final answer.
func (c *Cache) PutDelegationHint(ownerName string, qtype uint16, resp *dns.Msg) {
	c.Put(ownerName, qtype, resp)
}

// Clear removes every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[Key]*dns.Msg{}
}

// Len reports the number of cached entries, for operational visibility
// (e.g. the HTTP /stats endpoint).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
