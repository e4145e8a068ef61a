// Package codec adapts github.com/miekg/dns message construction and
// validation to the narrow shape the resolution engine needs: build a
// recursion-disabled query, and make sure a candidate reply is structurally
// usable before the walker reasons about its sections.
package codec

import (
	"errors"
	"fmt"

	"github.com/miekg/dns"
)

// DecodeError indicates a reply that cannot be trusted as an answer or a
// referral: missing question section, mismatched question, or anything else
// that would make the walker misclassify the reply. The walker treats a
// DecodeError exactly like a transport timeout.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode dns reply: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeQuery constructs a standard, recursion-disabled query for name and
// qtype. dns.Msg.SetQuestion assigns a fresh random id.
func EncodeQuery(name string, qtype uint16) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.CanonicalName(name), qtype)
	m.RecursionDesired = false
	return m
}

// Decode validates that msg is a usable reply to q. The wire bytes
// themselves are already parsed into msg by the transport layer (miekg/dns
// does that); this just rejects replies that don't actually answer the
// question asked, which a hostile or buggy nameserver can still produce.
func Decode(q, msg *dns.Msg) (*dns.Msg, error) {
	if msg == nil {
		return nil, &DecodeError{Err: errors.New("nil message")}
	}
	if len(msg.Question) != 1 {
		return nil, &DecodeError{Err: errors.New("missing or malformed question section")}
	}
	if len(q.Question) == 1 &&
		dns.CanonicalName(msg.Question[0].Name) != dns.CanonicalName(q.Question[0].Name) {
		return nil, &DecodeError{Err: fmt.Errorf("question name mismatch: asked %q, got %q",
			q.Question[0].Name, msg.Question[0].Name)}
	}
	return msg, nil
}

// SynthesizeEmpty builds the structurally valid, empty Response the engine
// returns when a resolution makes no further progress (spec invariant I2).
// It is never nil, mirroring a real (if useless) DNS reply.
func SynthesizeEmpty(name string, qtype uint16) *dns.Msg {
	q := EncodeQuery(name, qtype)
	resp := new(dns.Msg)
	resp.SetReply(q)
	return resp
}
