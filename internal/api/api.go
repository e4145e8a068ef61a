// Package api exposes a small read-only HTTP surface over a running
// resolver: liveness, a resolve-on-demand endpoint, and cache/host
// statistics. It is adapted from jroosing-HydraDNS's gin handler package,
// trimmed to the subset this engine needs — there is no auth, filtering,
// or cluster state here, only introspection of the live in-memory cache.
package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miekg/dns"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/dnswalk/iterdns/cache"
)

// Resolver is the single method the API needs from the resolver facade.
type Resolver interface {
	Resolve(ctx context.Context, name string, qtype uint16) *dns.Msg
}

// Handler wires a resolver and its cache into gin routes.
type Handler struct {
	Resolver  Resolver
	Cache     *cache.Cache
	startTime time.Time
}

// New returns a Handler that records the time it was created, used to
// report uptime.
func New(res Resolver, c *cache.Cache) *Handler {
	return &Handler{Resolver: res, Cache: c, startTime: time.Now()}
}

// Register mounts the API's routes on engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.GET("/healthz", h.Healthz)
	engine.GET("/resolve", h.Resolve)
	engine.GET("/stats", h.Stats)
}

var qtypes = map[string]uint16{
	"A":     dns.TypeA,
	"AAAA":  dns.TypeAAAA,
	"CNAME": dns.TypeCNAME,
	"MX":    dns.TypeMX,
	"NS":    dns.TypeNS,
}

type statusResponse struct {
	Status string `json:"status"`
}

type recordResponse struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type resolveResponse struct {
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Records []recordResponse `json:"records"`
}

type statsResponse struct {
	UptimeSeconds int64     `json:"uptime_seconds"`
	CacheEntries  int       `json:"cache_entries"`
	Host          hostStats `json:"host"`
}

type hostStats struct {
	NumCPU     int     `json:"num_cpu"`
	CPUPercent float64 `json:"cpu_percent"`
	MemUsedMB  float64 `json:"mem_used_mb"`
	MemTotalMB float64 `json:"mem_total_mb"`
	MemUsedPct float64 `json:"mem_used_percent"`
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// Resolve invokes the resolver for ?name=&type= and returns the decoded
// record set. It is a thin adapter over the same resolve(name, qtype) the
// CLI uses, not a separate code path.
func (h *Handler) Resolve(c *gin.Context) {
	name := c.Query("name")
	typ := c.DefaultQuery("type", "A")

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	qtype, ok := qtypes[typ]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported type " + typ})
		return
	}

	resp := h.Resolver.Resolve(c.Request.Context(), name, qtype)

	out := resolveResponse{Name: dns.CanonicalName(name), Type: typ}
	for _, rr := range resp.Answer {
		out.Records = append(out.Records, recordResponse{
			Name:  rr.Header().Name,
			Type:  dns.TypeToString[rr.Header().Rrtype],
			Value: rdataString(rr),
		})
	}

	c.JSON(http.StatusOK, out)
}

// Stats reports process and host statistics, in the spirit of
// jroosing-HydraDNS's /stats endpoint.
func (h *Handler) Stats(c *gin.Context) {
	host := hostStats{NumCPU: runtime.NumCPU()}

	if v, err := mem.VirtualMemory(); err == nil {
		host.MemTotalMB = float64(v.Total) / 1024 / 1024
		host.MemUsedMB = float64(v.Used) / 1024 / 1024
		host.MemUsedPct = v.UsedPercent
	}
	if pct, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(pct) > 0 {
		host.CPUPercent = pct[0]
	}

	c.JSON(http.StatusOK, statsResponse{
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CacheEntries:  h.Cache.Len(),
		Host:          host,
	})
}

func rdataString(rr dns.RR) string {
	switch v := rr.(type) {
	case *dns.A:
		return v.A.String()
	case *dns.AAAA:
		return v.AAAA.String()
	case *dns.CNAME:
		return v.Target
	case *dns.NS:
		return v.Ns
	case *dns.MX:
		return v.Mx
	default:
		return rr.String()
	}
}
