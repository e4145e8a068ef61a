// Package dnsmock provides a scripted transport.Querier for tests, plus a
// handful of dns.RR builder helpers. It exists so the walker and resolver
// packages can be driven through realistic referral chains without opening
// real sockets, matching the mock-transport testing approach the
// specification's own scenarios are written against.
package dnsmock

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/miekg/dns"
)

// Reply is a scripted response for one server. Exactly one of Msg or Err
// should be set.
type Reply struct {
	Msg *dns.Msg
	Err error
}

// Querier is a scripted transport.Querier keyed by (server IP, qtype). Each
// call to Query consumes the next Reply queued for that key, in FIFO order.
type Querier struct {
	mu      sync.Mutex
	scripts map[string][]Reply
	calls   []Call
}

// Call records one invocation, for assertions on what the walker actually
// queried.
type Call struct {
	Server string
	Name   string
	QType  uint16
}

func New() *Querier {
	return &Querier{scripts: map[string][]Reply{}}
}

func key(server string, qtype uint16) string {
	return fmt.Sprintf("%s/%d", server, qtype)
}

// When queues reply to be returned the next time server is queried for
// qtype.
func (q *Querier) When(server string, qtype uint16, reply Reply) {
	q.mu.Lock()
	defer q.mu.Unlock()
	k := key(server, qtype)
	q.scripts[k] = append(q.scripts[k], reply)
}

// Query implements transport.Querier.
func (q *Querier) Query(_ context.Context, serverIP string, msg *dns.Msg) (*dns.Msg, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var name string
	var qtype uint16
	if len(msg.Question) > 0 {
		name = msg.Question[0].Name
		qtype = msg.Question[0].Qtype
	}
	q.calls = append(q.calls, Call{Server: serverIP, Name: name, QType: qtype})

	k := key(serverIP, qtype)
	queue := q.scripts[k]
	if len(queue) == 0 {
		return nil, fmt.Errorf("dnsmock: no scripted reply for %s %s", serverIP, k)
	}
	next := queue[0]
	q.scripts[k] = queue[1:]
	return next.Msg, next.Err
}

// Calls returns every recorded call, in order.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

// Answer builds a reply whose answer section is rrs.
func Answer(qname string, rrs ...dns.RR) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(qname), rrs[0].Header().Rrtype)
	m.Answer = rrs
	return m
}

// Referral builds a reply delegating qname to the given NS names, with
// optional glue A records.
func Referral(qname string, qtype uint16, nsNames []string, glue map[string]string) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(qname), qtype)
	for _, ns := range nsNames {
		m.Ns = append(m.Ns, NSRecord(qname, ns))
	}
	for host, ip := range glue {
		m.Extra = append(m.Extra, ARecord(host, ip))
	}
	return m
}

// Empty builds a structurally valid reply with no answer or authority data.
func Empty(qname string, qtype uint16) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(qname), qtype)
	return m
}

func ARecord(name, ip string) *dns.A {
	return &dns.A{
		Hdr: dns.RR_Header{Name: dns.Fqdn(name), Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 300},
		A:   net.ParseIP(ip),
	}
}

func AAAARecord(name, ip string) *dns.AAAA {
	return &dns.AAAA{
		Hdr:  dns.RR_Header{Name: dns.Fqdn(name), Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: 300},
		AAAA: net.ParseIP(ip),
	}
}

func NSRecord(zone, target string) *dns.NS {
	return &dns.NS{
		Hdr: dns.RR_Header{Name: dns.Fqdn(zone), Rrtype: dns.TypeNS, Class: dns.ClassINET, Ttl: 300},
		Ns:  dns.Fqdn(target),
	}
}

func CNAMERecord(owner, target string) *dns.CNAME {
	return &dns.CNAME{
		Hdr:    dns.RR_Header{Name: dns.Fqdn(owner), Rrtype: dns.TypeCNAME, Class: dns.ClassINET, Ttl: 300},
		Target: dns.Fqdn(target),
	}
}

func MXRecord(owner string, pref uint16, exchange string) *dns.MX {
	return &dns.MX{
		Hdr:        dns.RR_Header{Name: dns.Fqdn(owner), Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: 300},
		Preference: pref,
		Mx:         dns.Fqdn(exchange),
	}
}
