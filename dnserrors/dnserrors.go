// Package dnserrors holds the sentinel errors the walker and resolver tag
// their internal failure accounting with, in the teacher's errors.go style.
// None of these ever reach a caller of Resolve: the engine's contract is
// "always a Response", so these exist for tracing/diagnostics (see the
// trace package) and for errors.Is-based tests of internal behavior, not
// for propagation.
package dnserrors

import "errors"

// ErrNoProgress is recorded when a full round of candidate nameservers
// completed without producing any answer or new candidate set.
var ErrNoProgress = errors.New("no progress: round exhausted without a new referral")

// ErrSafetyCapExceeded is recorded when a walk tried more than the
// safety-cap number of distinct nameserver IPs without resolving.
var ErrSafetyCapExceeded = errors.New("safety cap exceeded")

// ErrCircular is recorded when a CNAME alias was encountered twice within
// one top-level resolve call.
var ErrCircular = errors.New("circular CNAME reference")
