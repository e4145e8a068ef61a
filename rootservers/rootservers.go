// Package rootservers holds the compiled-in seed set of IANA root name
// server addresses that anchor the delegation chain.
package rootservers

// Addrs are the thirteen IANA root server IPv4 addresses, current as of
// 25 October 2018. They are the initial candidate set for any resolution
// that has no "last good nameservers" hint yet.
var Addrs = []string{
	"198.41.0.4",
	"199.9.14.201",
	"192.33.4.12",
	"199.7.91.13",
	"192.203.230.10",
	"192.5.5.241",
	"192.112.36.4",
	"198.97.190.53",
	"192.36.148.17",
	"192.58.128.30",
	"193.0.14.129",
	"199.7.83.42",
	"202.12.27.33",
}
