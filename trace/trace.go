// Package trace records the sequence of nameserver attempts made while
// resolving one name, for tests and other debugging that wants to inspect
// the query sequence a Walk made.
//
// It is adapted from the teacher repo's Trace/TraceNode tree, flattened into
// a single ordered list (this engine's walker never has concurrent
// in-flight queries, so there's no need for the teacher's push/pop
// recursion-tracking stack) and bounded with an LRU ring so a pathological,
// deeply-recursive resolution can't let a Walker's trace buffer grow
// without bound. This bound is a diagnostics-only safety net: the engine's
// own 30-server safety cap (see the walker package) is what actually stops
// a resolution from running away.
package trace

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/miekg/dns"
)

// defaultCapacity bounds the number of attempts retained per Trace.
const defaultCapacity = 256

// Attempt records one query sent to one server.
type Attempt struct {
	Server   string
	Query    *dns.Msg
	Response *dns.Msg
	RTT      time.Duration
	Err      error
}

// Trace is an append-only, capacity-bounded log of Attempts.
type Trace struct {
	buf *expirable.LRU[uint64, Attempt]
	seq atomic.Uint64
}

// New returns a Trace holding at most capacity Attempts, evicting the
// oldest once full. capacity <= 0 uses defaultCapacity.
func New(capacity int) *Trace {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Trace{buf: expirable.NewLRU[uint64, Attempt](capacity, nil, 0)}
}

// Add records an attempt.
func (t *Trace) Add(a Attempt) {
	seq := t.seq.Add(1)
	t.buf.Add(seq, a)
}

// Attempts returns the retained attempts in the order they were added.
func (t *Trace) Attempts() []Attempt {
	keys := t.buf.Keys()
	out := make([]Attempt, 0, len(keys))
	for _, k := range keys {
		if a, ok := t.buf.Peek(k); ok {
			out = append(out, a)
		}
	}
	return out
}

// Dump writes a human-readable rendering of the trace to w. Lines starting
// with "?" are queries, "!" are records returned, and "X" are errors.
func (t *Trace) Dump(w io.Writer) {
	for _, a := range t.Attempts() {
		var q string
		if len(a.Query.Question) > 0 {
			q = a.Query.Question[0].String()
		}
		fmt.Fprintf(w, "? %s @%s %dms\n", q, a.Server, a.RTT.Milliseconds())

		if a.Err != nil {
			fmt.Fprintf(w, "  X %v\n", a.Err)
			continue
		}
		if a.Response == nil {
			fmt.Fprintf(w, "  ~ EMPTY\n")
			continue
		}
		for _, rr := range a.Response.Answer {
			fmt.Fprintf(w, "  ! %v\n", rr)
		}
		for _, rr := range a.Response.Ns {
			fmt.Fprintf(w, "  ! %v\n", rr)
		}
		for _, rr := range a.Response.Extra {
			fmt.Fprintf(w, "  ! %v\n", rr)
		}
	}
}
