package codec

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQuery(t *testing.T) {
	m := EncodeQuery("Example.Com", dns.TypeA)

	assert.False(t, m.RecursionDesired)
	require.Len(t, m.Question, 1)
	assert.Equal(t, "example.com.", m.Question[0].Name)
	assert.Equal(t, dns.TypeA, m.Question[0].Qtype)
	assert.Equal(t, dns.ClassINET, int(m.Question[0].Qclass))
}

func TestDecode(t *testing.T) {
	q := EncodeQuery("example.com", dns.TypeA)

	t.Run("nil message", func(t *testing.T) {
		_, err := Decode(q, nil)
		assert.Error(t, err)
	})

	t.Run("no question", func(t *testing.T) {
		reply := new(dns.Msg)
		_, err := Decode(q, reply)
		assert.Error(t, err)
	})

	t.Run("mismatched question", func(t *testing.T) {
		reply := new(dns.Msg)
		reply.SetReply(EncodeQuery("other.test", dns.TypeA))
		_, err := Decode(q, reply)
		assert.Error(t, err)
	})

	t.Run("valid reply", func(t *testing.T) {
		reply := new(dns.Msg)
		reply.SetReply(q)
		got, err := Decode(q, reply)
		assert.NoError(t, err)
		assert.Same(t, reply, got)
	})
}

func TestSynthesizeEmpty(t *testing.T) {
	resp := SynthesizeEmpty("example.com", dns.TypeA)

	require.NotNil(t, resp)
	assert.Empty(t, resp.Answer)
	assert.Empty(t, resp.Ns)
	assert.Empty(t, resp.Extra)
	assert.Equal(t, dns.RcodeSuccess, resp.Rcode)
	require.Len(t, resp.Question, 1)
	assert.Equal(t, "example.com.", resp.Question[0].Name)
}
