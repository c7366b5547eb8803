package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceCache  = "cache"
)

type Registry struct {
	reg *prometheus.Registry

	Matches      *prometheus.CounterVec
	Fallbacks    *prometheus.CounterVec
	RankDuration *prometheus.HistogramVec
	CacheHits    *prometheus.CounterVec
	CacheMisses  *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_rankings_total",
				Help: "Ranked match pages served by kind and source",
			},
			[]string{"kind", "source"},
		),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_remote_fallbacks_total",
				Help: "Remote matching failures answered by the local scorer",
			},
			[]string{"kind"},
		),
		RankDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "talent_match_ranking_duration_seconds",
				Help:    "Time spent producing a ranked match page",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"kind", "source"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_cache_hits_total",
				Help: "Match cache hits by kind",
			},
			[]string{"kind"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_cache_misses_total",
				Help: "Match cache misses by kind",
			},
			[]string{"kind"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talent_match_http_requests_total",
				Help: "HTTP requests by method and status class",
			},
			[]string{"method", "status"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Matches, r.Fallbacks, r.RankDuration, r.CacheHits, r.CacheMisses, r.HTTPRequests,
	)
	return r
}

// The nil receiver is a no-op so callers can run without metrics.

func (r *Registry) ObserveRanking(kind, source string, took time.Duration) {
	if r == nil {
		return
	}
	r.Matches.WithLabelValues(kind, source).Inc()
	r.RankDuration.WithLabelValues(kind, source).Observe(took.Seconds())
}

func (r *Registry) Fallback(kind string) {
	if r == nil {
		return
	}
	r.Fallbacks.WithLabelValues(kind).Inc()
}

func (r *Registry) Cache(kind string, hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.CacheHits.WithLabelValues(kind).Inc()
		return
	}
	r.CacheMisses.WithLabelValues(kind).Inc()
}

func (r *Registry) HTTPRequest(method string, status int) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, statusClass(status)).Inc()
}

func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
