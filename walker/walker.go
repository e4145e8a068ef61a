// Package walker implements the delegation walk: starting from a set of
// candidate nameservers, it drives one query down the referral chain until
// it gets an answer or exhausts its options. It is adapted from the
// teacher's queryIteratively/doQuery pair in resolver.go, generalized to
// this engine's glue-then-NS-recursion referral handling and safety limits.
package walker

import (
	"context"
	"time"

	"github.com/miekg/dns"

	"github.com/dnswalk/iterdns/cache"
	"github.com/dnswalk/iterdns/codec"
	"github.com/dnswalk/iterdns/dnserrors"
	"github.com/dnswalk/iterdns/hint"
	"github.com/dnswalk/iterdns/rootservers"
	"github.com/dnswalk/iterdns/trace"
	"github.com/dnswalk/iterdns/transport"
)

const (
	// failureResetThreshold is the number of failures (transport/decode
	// errors, empty replies, referrals yielding no candidates) since the walk
	// began or since the last reset that sends the walker back to the root
	// servers. A referral that makes progress does not zero the count.
	failureResetThreshold = 4

	// safetyCap is the hard ceiling on distinct nameserver IPs tried in one
	// Walk call, guarding against pathological delegation loops.
	safetyCap = 30
)

// Resolver is the subset of the resolver facade the walker calls back into
// to resolve unglued NS hostnames. Defining it here, rather than importing
// the resolver package, lets the two packages depend on each other without
// an import cycle: resolver.Resolver satisfies this interface structurally.
type Resolver interface {
	Resolve(ctx context.Context, name string, qtype uint16) *dns.Msg
}

// Walker drives one delegation chain to completion.
type Walker struct {
	Querier transport.Querier
	Cache   *cache.Cache
	Hint    *hint.Hint
	Trace   *trace.Trace // optional; nil disables tracing
}

type msgKind int

const (
	kindEmpty msgKind = iota
	kindAnswer
	kindReferral
)

// Walk performs the round-based delegation algorithm for (name, qtype),
// starting from initial as the seed nameserver set. It never returns nil:
// on exhaustion it synthesizes and caches an empty response for (name,
// qtype).
func (w *Walker) Walk(ctx context.Context, res Resolver, name string, qtype uint16, initial []string) *dns.Msg {
	candidates := dedupe(initial)
	tried := map[string]struct{}{}
	failures := 0
	q := codec.EncodeQuery(name, qtype)

round:
	for {
		for _, ip := range candidates {
			if _, seen := tried[ip]; seen {
				continue
			}
			tried[ip] = struct{}{}

			if len(tried) > safetyCap {
				return w.giveUp(name, qtype, dnserrors.ErrSafetyCapExceeded)
			}

			start := time.Now()
			resp, err := w.Querier.Query(ctx, ip, q)
			rtt := time.Since(start)
			if w.Trace != nil {
				w.Trace.Add(trace.Attempt{Server: ip, Query: q, Response: resp, RTT: rtt, Err: err})
			}

			if err != nil {
				if w.bumpFailure(&failures, &candidates) {
					continue round
				}
				continue
			}

			switch classify(resp) {
			case kindAnswer:
				return resp

			case kindReferral:
				next := w.collectCandidates(ctx, res, resp, candidates)
				if len(next) == 0 {
					if w.bumpFailure(&failures, &candidates) {
						continue round
					}
					continue
				}
				candidates = next
				w.Hint.Set(next)
				continue round

			default: // kindEmpty
				if w.bumpFailure(&failures, &candidates) {
					continue round
				}
			}
		}

		// A full round completed without producing a new candidate set.
		return w.giveUp(name, qtype, dnserrors.ErrNoProgress)
	}
}

// bumpFailure increments the failure counter and, once it
// reaches failureResetThreshold, resets candidates to the root servers and
// zeroes the counter so the walk can escape a stuck branch. It reports
// whether a reset happened, so the caller can restart its round
// immediately against the fresh candidate set.
func (w *Walker) bumpFailure(failures *int, candidates *[]string) bool {
	*failures++
	if *failures >= failureResetThreshold {
		*candidates = append([]string(nil), rootservers.Addrs...)
		*failures = 0
		return true
	}
	return false
}

// giveUp synthesizes and caches an empty response for (name, qtype). reason
// is recorded in the trace, if one is attached, for diagnostics; it never
// reaches the caller of Walk.
func (w *Walker) giveUp(name string, qtype uint16, reason error) *dns.Msg {
	if w.Trace != nil {
		w.Trace.Add(trace.Attempt{Err: reason, Query: codec.EncodeQuery(name, qtype)})
	}
	empty := codec.SynthesizeEmpty(name, qtype)
	w.Cache.PutDelegationHint(name, qtype, empty)
	return empty
}

// collectCandidates extracts the next round's nameserver IPs from a
// referral, preferring glue records and falling back to recursively
// resolving unglued NS names. current is the candidate set that produced
// this referral; it becomes the recursive call's seed hint, restored
// afterward, so a sub-resolution's failures don't erase this walk's
// progress.
func (w *Walker) collectCandidates(ctx context.Context, res Resolver, resp *dns.Msg, current []string) []string {
	var glue []string
	for _, rr := range resp.Extra {
		switch a := rr.(type) {
		case *dns.A:
			w.Cache.PutDelegationHint(rr.Header().Name, dns.TypeA, resp)
			glue = append(glue, a.A.String())
		case *dns.AAAA:
			// Cached for completeness, but never dialed: transport in this
			// version is IPv4-only.
			w.Cache.PutDelegationHint(rr.Header().Name, dns.TypeAAAA, resp)
		}
	}
	if len(glue) > 0 {
		return dedupe(glue)
	}

	var nsNames []string
	for _, rr := range resp.Ns {
		if ns, ok := rr.(*dns.NS); ok {
			nsNames = append(nsNames, ns.Ns)
		}
	}
	if len(nsNames) == 0 {
		return nil
	}

	var ips []string
	for _, nsName := range nsNames {
		var aResp *dns.Msg
		if cached, ok := w.Cache.Get(nsName, dns.TypeA); ok {
			aResp = cached
		} else {
			saved := w.Hint.Get()
			w.Hint.Set(current)
			aResp = res.Resolve(ctx, nsName, dns.TypeA)
			w.Hint.Set(saved)
			w.Cache.PutDelegationHint(nsName, dns.TypeA, aResp)
		}
		for _, rr := range aResp.Answer {
			if a, ok := rr.(*dns.A); ok {
				ips = append(ips, a.A.String())
			}
		}
	}
	return dedupe(ips)
}

// classify reports what kind of reply resp is: an answer, a referral (NS
// records in the authority section with no answer), or otherwise empty.
func classify(resp *dns.Msg) msgKind {
	if resp == nil {
		return kindEmpty
	}
	if len(resp.Answer) > 0 {
		return kindAnswer
	}
	for _, rr := range resp.Ns {
		if _, ok := rr.(*dns.NS); ok {
			return kindReferral
		}
	}
	return kindEmpty
}

// dedupe removes duplicate entries, preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
