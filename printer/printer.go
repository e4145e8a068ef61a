// Package printer renders resolution results as the four fixed-format
// lines the command-line front end prints for each name: CNAME, A, AAAA,
// then MX, in that order, mirroring the teacher's own text-output
// philosophy (plain fmt.Fprintf lines, no templating engine).
package printer

import (
	"context"
	"fmt"
	"io"

	"github.com/miekg/dns"
)

// Resolver is the single method the printer needs from the resolver
// facade.
type Resolver interface {
	Resolve(ctx context.Context, name string, qtype uint16) *dns.Msg
}

// Lines resolves rawName's CNAME, A, AAAA, and MX records and returns the
// print lines for it, in fixed type order. rawName is used verbatim (not
// canonicalized) for the alias line's {name}; every other line names the
// canonical, fully-qualified form of rawName, regardless of which owner
// name the underlying RecordSet actually carries after a CNAME chase.
func Lines(ctx context.Context, res Resolver, rawName string) []string {
	canon := dns.CanonicalName(rawName)
	var lines []string

	if resp := res.Resolve(ctx, rawName, dns.TypeCNAME); resp != nil {
		for _, rr := range resp.Answer {
			if c, ok := rr.(*dns.CNAME); ok {
				lines = append(lines, fmt.Sprintf("%s is an alias for %s", c.Target, rawName))
			}
		}
	}

	if resp := res.Resolve(ctx, rawName, dns.TypeA); resp != nil {
		for _, rr := range resp.Answer {
			if a, ok := rr.(*dns.A); ok {
				lines = append(lines, fmt.Sprintf("%s has address %s", canon, a.A.String()))
			}
		}
	}

	if resp := res.Resolve(ctx, rawName, dns.TypeAAAA); resp != nil {
		for _, rr := range resp.Answer {
			if a, ok := rr.(*dns.AAAA); ok {
				lines = append(lines, fmt.Sprintf("%s has IPv6 address %s", canon, a.AAAA.String()))
			}
		}
	}

	if resp := res.Resolve(ctx, rawName, dns.TypeMX); resp != nil {
		for _, rr := range resp.Answer {
			if mx, ok := rr.(*dns.MX); ok {
				lines = append(lines, fmt.Sprintf("%s mail is handled by %d %s", canon, mx.Preference, mx.Mx))
			}
		}
	}

	return lines
}

// Print writes rawName's lines to w, one per line.
func Print(ctx context.Context, w io.Writer, res Resolver, rawName string) {
	for _, line := range Lines(ctx, res, rawName) {
		fmt.Fprintln(w, line)
	}
}
