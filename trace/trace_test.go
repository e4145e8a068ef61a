package trace

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func query(name string) *dns.Msg {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeA)
	return m
}

func TestTrace_AddAndAttempts_PreservesOrder(t *testing.T) {
	tr := New(0)
	tr.Add(Attempt{Server: "198.41.0.4", Query: query("example.com")})
	tr.Add(Attempt{Server: "192.5.6.30", Query: query("example.com")})

	got := tr.Attempts()
	require.Len(t, got, 2)
	assert.Equal(t, "198.41.0.4", got[0].Server)
	assert.Equal(t, "192.5.6.30", got[1].Server)
}

func TestTrace_EvictsOldestPastCapacity(t *testing.T) {
	tr := New(2)
	tr.Add(Attempt{Server: "a", Query: query("x")})
	tr.Add(Attempt{Server: "b", Query: query("x")})
	tr.Add(Attempt{Server: "c", Query: query("x")})

	got := tr.Attempts()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Server)
	assert.Equal(t, "c", got[1].Server)
}

func TestTrace_Dump(t *testing.T) {
	tr := New(0)
	resp := new(dns.Msg)
	resp.Answer = []dns.RR{&dns.A{Hdr: dns.RR_Header{Name: "example.com.", Rrtype: dns.TypeA, Class: dns.ClassINET}}}
	tr.Add(Attempt{Server: "198.41.0.4", Query: query("example.com"), Response: resp, RTT: 10 * time.Millisecond})
	tr.Add(Attempt{Server: "192.5.6.30", Query: query("example.com"), Err: errors.New("timeout")})

	var buf bytes.Buffer
	tr.Dump(&buf)

	out := buf.String()
	assert.Contains(t, out, "198.41.0.4")
	assert.Contains(t, out, "X timeout")
}
