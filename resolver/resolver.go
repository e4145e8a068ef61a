// Package resolver implements the public resolve(name, qtype) entry point:
// it consults the cache, invokes the walker, follows CNAME chains, and
// caches final and intermediate results. It is adapted from the teacher's
// Resolver.Query/queryResult pair in resolver.go, generalized to this
// engine's TTL-less cache and dual-key CNAME caching.
package resolver

import (
	"context"

	"github.com/miekg/dns"

	"github.com/dnswalk/iterdns/cache"
	"github.com/dnswalk/iterdns/codec"
	"github.com/dnswalk/iterdns/dnserrors"
	"github.com/dnswalk/iterdns/hint"
	"github.com/dnswalk/iterdns/rootservers"
	"github.com/dnswalk/iterdns/trace"
	"github.com/dnswalk/iterdns/walker"
)

// Resolver is the facade exposed to the CLI and the HTTP debug API. It also
// satisfies walker.Resolver, so the Walker can call back into it to resolve
// unglued NS hostnames.
type Resolver struct {
	Cache  *cache.Cache
	Hint   *hint.Hint
	Walker *walker.Walker
}

// New wires a Resolver and the Walker it drives from shared Cache and Hint
// instances.
func New(c *cache.Cache, h *hint.Hint, w *walker.Walker) *Resolver {
	return &Resolver{Cache: c, Hint: h, Walker: w}
}

// Resolve answers (name, qtype), consulting and populating the cache. It
// never returns nil and never panics on a malformed or absent answer; on
// exhaustion it returns the synthesized empty Response the Walker produces.
func (r *Resolver) Resolve(ctx context.Context, name string, qtype uint16) *dns.Msg {
	return r.resolve(ctx, name, qtype, map[string]struct{}{})
}

// resolve carries the per-top-level-call visited-alias set through CNAME
// recursion, so a CNAME cycle terminates even before the walker's own
// safety cap would stop it. A call into the Walker for unglued NS
// resolution goes through Resolve, not resolve, and so starts its own
// fresh visited set: it is an independent resolution, not part of this
// call's alias chain.
func (r *Resolver) resolve(ctx context.Context, name string, qtype uint16, visited map[string]struct{}) *dns.Msg {
	canon := dns.CanonicalName(name)

	if cached, ok := r.Cache.Get(canon, qtype); ok {
		return cached
	}

	if _, seen := visited[canon]; seen {
		if r.Walker.Trace != nil {
			r.Walker.Trace.Add(trace.Attempt{Err: dnserrors.ErrCircular, Query: codec.EncodeQuery(canon, qtype)})
		}
		empty := codec.SynthesizeEmpty(canon, qtype)
		r.Cache.Put(canon, qtype, empty)
		return empty
	}
	visited[canon] = struct{}{}

	seed := r.Hint.Get()
	if len(seed) == 0 {
		seed = append([]string(nil), rootservers.Addrs...)
	}

	resp := r.Walker.Walk(ctx, r, canon, qtype, seed)

	if len(resp.Answer) == 0 {
		r.Cache.Put(canon, qtype, resp)
		return resp
	}

	if qtype != dns.TypeCNAME {
		if alias, ok := cnameTarget(resp, canon); ok {
			tail := r.resolve(ctx, alias, qtype, visited)
			merged := merge(resp, tail)
			r.Cache.Put(canon, qtype, merged)
			r.Cache.Put(canon, dns.TypeCNAME, resp)
			return merged
		}
	}

	r.Cache.Put(canon, qtype, resp)
	return resp
}
