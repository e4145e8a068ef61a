// Package hint holds the single piece of shared, mutable state the walker
// and the resolver facade both touch: the "last good nameservers" the
// previous successful delegation ended at. Seeding new resolutions from
// this hint, instead of always restarting at the root servers, is what lets
// the walker escape a stuck branch without throwing away prior progress.
package hint

import "sync"

// Hint is a process-wide, mutex-guarded list of nameserver IPs.
type Hint struct {
	mu      sync.Mutex
	servers []string
}

// New returns a Hint seeded with initial.
func New(initial []string) *Hint {
	return &Hint{servers: append([]string(nil), initial...)}
}

// Get returns a copy of the current hint.
func (h *Hint) Get() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.servers...)
}

// Set replaces the current hint.
func (h *Hint) Set(servers []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.servers = append([]string(nil), servers...)
}
