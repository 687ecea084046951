// Package metrics exposes the gate's Prometheus metrics: authorization
// decisions, JWKS fetches and per-route HTTP traffic.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gatekeeper"

var latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics owns a private registry so tests and embedders can build as many
// as they like.
type Metrics struct {
	registry    *prometheus.Registry
	constLabels prometheus.Labels

	decisions     *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New creates and registers the gate's collectors along with the Go runtime
// and process collectors.
func New(buildVersion string) *Metrics {
	constLabels := prometheus.Labels{"version": buildVersion}

	m := &Metrics{
		registry:    prometheus.NewRegistry(),
		constLabels: constLabels,
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "decisions_total",
			Help:        "Authorization decisions by outcome and denial kind.",
			ConstLabels: constLabels,
		}, []string{"outcome", "kind"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "jwks_fetches_total",
			Help:        "JWKS document fetches by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "jwks_fetch_duration_seconds",
			Help:        "Latency of JWKS document fetches.",
			ConstLabels: constLabels,
			Buckets:     latencyBuckets,
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status code.",
			ConstLabels: constLabels,
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and method.",
			ConstLabels: constLabels,
			Buckets:     latencyBuckets,
		}, []string{"route", "method"}),
	}

	m.registry.MustRegister(
		m.decisions,
		m.fetches,
		m.fetchDuration,
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// WatchKeys exports whether the key store currently holds usable keys.
func (m *Metrics) WatchKeys(keys interface{ Ready() bool }) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "jwks_ready",
		Help:        "1 when at least one verification key is loaded.",
		ConstLabels: m.constLabels,
	}, func() float64 {
		if keys.Ready() {
			return 1
		}
		return 0
	}))
}

// Instrument counts and times requests served by h under the route label.
// Pass the mux pattern, never the raw path, to keep label cardinality fixed.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h),
	)
}

// Authorizer records every decision a returns.
func (m *Metrics) Authorizer(a httpx.Authorizer) httpx.Authorizer {
	return authorizer{next: a, decisions: m.decisions}
}

type authorizer struct {
	next      httpx.Authorizer
	decisions *prometheus.CounterVec
}

func (a authorizer) Authorize(ctx context.Context, header http.Header, required string) gate.Result {
	res := a.next.Authorize(ctx, header, required)
	switch r := res.(type) {
	case gate.Verified:
		a.decisions.WithLabelValues("allowed", "").Inc()
	case gate.Denied:
		a.decisions.WithLabelValues("denied", r.Kind.String()).Inc()
	}
	return res
}

// Fetcher counts and times every JWKS download made through f.
func (m *Metrics) Fetcher(f jwtx.Fetcher) jwtx.Fetcher {
	return jwtx.FetcherFunc(func(ctx context.Context) (jwtx.JWKS, error) {
		start := time.Now()
		jwks, err := f.FetchJWKS(ctx)
		m.fetchDuration.Observe(time.Since(start).Seconds())

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.fetches.WithLabelValues(outcome).Inc()
		return jwks, err
	})
}
