package walker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnswalk/iterdns/cache"
	"github.com/dnswalk/iterdns/dnsmock"
	"github.com/dnswalk/iterdns/hint"
)

const (
	root1 = "198.41.0.4"
	root2 = "199.9.14.201"
	tld1  = "192.5.6.30"
	auth1 = "203.0.113.1"
)

func newWalker(q *dnsmock.Querier) *Walker {
	return &Walker{
		Querier: q,
		Cache:   cache.New(),
		Hint:    hint.New([]string{root1}),
	}
}

type stubResolver struct {
	resp *dns.Msg
}

func (s stubResolver) Resolve(_ context.Context, _ string, _ uint16) *dns.Msg {
	return s.resp
}

func TestWalker_DirectAnswer(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Answer("example.com", dnsmock.ARecord("example.com", "93.184.216.34"))})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "example.com", dns.TypeA, []string{root1})

	require.Len(t, resp.Answer, 1)
	assert.Equal(t, "93.184.216.34", resp.Answer[0].(*dns.A).A.String())
}

func TestWalker_ReferralWithGlue_ThenAnswer(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Referral("example.com", dns.TypeA,
		[]string{"a.gtld-servers.net"}, map[string]string{"a.gtld-servers.net": tld1})})
	q.When(tld1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Referral("example.com", dns.TypeA,
		[]string{"ns1.example.com"}, map[string]string{"ns1.example.com": auth1})})
	q.When(auth1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Answer("example.com", dnsmock.ARecord("example.com", "93.184.216.34"))})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "example.com", dns.TypeA, []string{root1})

	require.Len(t, resp.Answer, 1)
	assert.Equal(t, "93.184.216.34", resp.Answer[0].(*dns.A).A.String())
	assert.Equal(t, []string{auth1}, w.Hint.Get())
}

func TestWalker_UngluedNS_RecursesViaResolver(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Referral("foo.test", dns.TypeA,
		[]string{"ns1.other.test"}, nil)})
	q.When(auth1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Answer("foo.test", dnsmock.ARecord("foo.test", "203.0.113.9"))})

	resolver := stubResolver{resp: dnsmock.Answer("ns1.other.test", dnsmock.ARecord("ns1.other.test", auth1))}

	w := newWalker(q)
	resp := w.Walk(context.Background(), resolver, "foo.test", dns.TypeA, []string{root1})

	require.Len(t, resp.Answer, 1)
	assert.Equal(t, "203.0.113.9", resp.Answer[0].(*dns.A).A.String())
}

func TestWalker_EmptyReply_TreatedAsFailure(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Empty("x.test", dns.TypeA)})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "x.test", dns.TypeA, []string{root1})

	assert.Empty(t, resp.Answer)
}

func TestWalker_AllTimeouts_ReturnsEmptyAndCaches(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Err: errors.New("timeout")})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "x.test", dns.TypeA, []string{root1})

	assert.Empty(t, resp.Answer)
	cached, ok := w.Cache.Get("x.test", dns.TypeA)
	require.True(t, ok)
	assert.Empty(t, cached.Answer)
}

func TestWalker_FourFailures_ResetsToRootServers(t *testing.T) {
	bogus := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"}
	q := dnsmock.New()
	for _, ip := range bogus {
		q.When(ip, dns.TypeA, dnsmock.Reply{Err: errors.New("unreachable")})
	}
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Answer("example.com", dnsmock.ARecord("example.com", "93.184.216.34"))})

	w := &Walker{Querier: q, Cache: cache.New(), Hint: hint.New([]string{root1})}
	resp := w.Walk(context.Background(), stubResolver{}, "example.com", dns.TypeA, bogus)

	require.Len(t, resp.Answer, 1)
	assert.Equal(t, "93.184.216.34", resp.Answer[0].(*dns.A).A.String())
}

func TestWalker_DuplicateCandidateIPs_QueriedOnce(t *testing.T) {
	q := dnsmock.New()
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Answer("example.com", dnsmock.ARecord("example.com", "93.184.216.34"))})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "example.com", dns.TypeA, []string{root1, root1, root1})

	require.Len(t, resp.Answer, 1)
	assert.Len(t, q.Calls(), 1)
}

func TestWalker_AuthorityWithoutNSRecords_TreatedAsEmpty(t *testing.T) {
	q := dnsmock.New()
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn("x.test"), dns.TypeA)
	m.Ns = []dns.RR{&dns.SOA{Hdr: dns.RR_Header{Name: "test.", Rrtype: dns.TypeSOA, Class: dns.ClassINET, Ttl: 300}}}
	q.When(root1, dns.TypeA, dnsmock.Reply{Msg: m})

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "x.test", dns.TypeA, []string{root1})

	assert.Empty(t, resp.Answer)
}

func TestWalker_NonUsefulReferrals_StopWithinSafetyCap(t *testing.T) {
	var candidates []string
	q := dnsmock.New()
	for i := 0; i < 40; i++ {
		ip := ipFor(i)
		candidates = append(candidates, ip)
		q.When(ip, dns.TypeA, dnsmock.Reply{Msg: dnsmock.Referral("x.test", dns.TypeA, nil, nil)})
	}

	w := newWalker(q)
	resp := w.Walk(context.Background(), stubResolver{}, "x.test", dns.TypeA, candidates)

	assert.Empty(t, resp.Answer)
	assert.LessOrEqual(t, len(q.Calls()), 31)
}

func ipFor(i int) string {
	return fmt.Sprintf("198.51.100.%d", i%250)
}
