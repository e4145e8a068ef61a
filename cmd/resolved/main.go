// Command resolved runs the resolver behind a small read-only HTTP API for
// operational visibility: liveness, resolve-on-demand, and cache/host
// statistics. It shares the same resolver package the resolve CLI uses;
// this binary only adds a network-facing front end for operators.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/dnswalk/iterdns/cache"
	"github.com/dnswalk/iterdns/hint"
	"github.com/dnswalk/iterdns/internal/api"
	"github.com/dnswalk/iterdns/resolver"
	"github.com/dnswalk/iterdns/rootservers"
	"github.com/dnswalk/iterdns/trace"
	"github.com/dnswalk/iterdns/transport"
	"github.com/dnswalk/iterdns/walker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "resolved: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := pflag.StringP("addr", "a", ":8053", "HTTP listen address")
	pflag.Parse()

	c := cache.New()
	h := hint.New(append([]string(nil), rootservers.Addrs...))
	w := &walker.Walker{Querier: transport.New(), Cache: c, Hint: h, Trace: trace.New(0)}
	res := resolver.New(c, h, w)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.New(res, c).Register(engine)

	srv := &http.Server{Addr: *addr, Handler: engine}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}
