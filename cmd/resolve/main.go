// Command resolve is the CLI front end: for each name given on the command
// line it performs CNAME, A, AAAA, and MX resolutions and prints the
// results in the fixed four-line-type order.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/dnswalk/iterdns/cache"
	"github.com/dnswalk/iterdns/hint"
	"github.com/dnswalk/iterdns/printer"
	"github.com/dnswalk/iterdns/resolver"
	"github.com/dnswalk/iterdns/rootservers"
	"github.com/dnswalk/iterdns/trace"
	"github.com/dnswalk/iterdns/transport"
	"github.com/dnswalk/iterdns/walker"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "accepted for compatibility; has no effect on output")
	pflag.Parse()
	_ = verbose

	names := pflag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "usage: resolve [-v|--verbose] NAME [NAME...]")
		os.Exit(0)
	}

	c := cache.New()
	h := hint.New(append([]string(nil), rootservers.Addrs...))
	w := &walker.Walker{Querier: transport.New(), Cache: c, Hint: h, Trace: trace.New(0)}
	res := resolver.New(c, h, w)

	out := make([][]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			var buf bytes.Buffer
			printer.Print(context.Background(), &buf, res, name)
			out[i] = []string{buf.String()}
		}(i, name)
	}
	wg.Wait()

	for _, lines := range out {
		fmt.Print(lines[0])
	}
}
