// Package transport performs the single UDP round-trip the walker needs: one
// wire message to one server IP, bounded by a fixed timeout, no retries.
package transport

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/dnswalk/iterdns/codec"
)

// DefaultTimeout is the fixed per-query round-trip timeout mandated by the
// spec: no retry at this layer, the walker decides what to do next.
const DefaultTimeout = 3 * time.Second

// Error subsumes socket failure, timeout, unreachable host, and decode
// error — the walker treats all of these identically, as "try next server".
type Error struct {
	Server string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query %s: %v", e.Server, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Querier is satisfied by Transport and by test doubles. The walker depends
// on this interface, not on the concrete UDP implementation, so it can be
// driven by a mock transport in tests without opening a single socket.
type Querier interface {
	Query(ctx context.Context, serverIP string, q *dns.Msg) (*dns.Msg, error)
}

// Transport sends queries over UDP/53 through one shared *dns.Client, which
// opens a fresh socket for every exchange, as the spec requires: no
// connection pool, no persistent socket.
type Transport struct {
	// Timeout overrides DefaultTimeout if positive.
	Timeout time.Duration

	client *dns.Client
}

var _ Querier = (*Transport)(nil)

// New returns a Transport with the default 3 second timeout.
func New() *Transport {
	return &Transport{client: new(dns.Client)}
}

// Query sends q to serverIP:53 and returns the decoded reply, or an *Error
// wrapping whatever went wrong (dial failure, timeout, malformed reply).
func (t *Transport) Query(ctx context.Context, serverIP string, q *dns.Msg) (*dns.Msg, error) {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(serverIP, "53")

	resp, _, err := t.client.ExchangeContext(ctx, q, addr)
	if err != nil {
		return nil, &Error{Server: serverIP, Err: err}
	}

	decoded, err := codec.Decode(q, resp)
	if err != nil {
		return nil, &Error{Server: serverIP, Err: err}
	}

	return decoded, nil
}
