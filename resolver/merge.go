package resolver

import "github.com/miekg/dns"

// merge builds the Response returned for a name whose answer was a CNAME:
// the head's answer (the CNAME RecordSet) followed by the tail's answer
// (the target's RecordSets), preserving order. It never mutates head or
// tail.
func merge(head, tail *dns.Msg) *dns.Msg {
	m := head.Copy()
	m.Answer = append(append([]dns.RR(nil), head.Answer...), tail.Answer...)
	return m
}

// cnameTarget returns the alias target of a CNAME RecordSet in resp.Answer
// owned by owner, if any.
func cnameTarget(resp *dns.Msg, owner string) (string, bool) {
	for _, rr := range resp.Answer {
		c, ok := rr.(*dns.CNAME)
		if !ok {
			continue
		}
		if dns.CanonicalName(c.Hdr.Name) != owner {
			continue
		}
		return c.Target, true
	}
	return "", false
}
