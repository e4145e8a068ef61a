package rootservers

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddrs(t *testing.T) {
	assert.Len(t, Addrs, 13)

	seen := map[string]bool{}
	for _, addr := range Addrs {
		ip := net.ParseIP(addr)
		assert.NotNil(t, ip, "%q is not an IP address", addr)
		assert.NotNil(t, ip.To4(), "%q is not an IPv4 address", addr)
		assert.False(t, seen[addr], "duplicate root server address %q", addr)
		seen[addr] = true
	}
}
