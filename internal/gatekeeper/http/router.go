package http

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	_ "github.com/aussiebroadwan/gatekeeper/api/gatekeeper" // Swagger docs
	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/metrics"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	httpSwagger "github.com/swaggo/http-swagger"
)

// KeyReadiness reports whether token verification can work right now.
// *jwtx.KeyStore implements it.
type KeyReadiness interface {
	Ready() bool
}

// RouterConfig carries what the routes need.
type RouterConfig struct {
	Auth     httpx.Authorizer
	Keys     KeyReadiness
	Upstream *url.URL // nil keeps resource routes gated but answers them with 503
	Limits   httpx.RateLimits

	// TrustForwarded keys IP limits on X-Forwarded-For. Only set it behind
	// a proxy that overwrites the header.
	TrustForwarded bool

	// Metrics, when set, counts decisions and per-route traffic and is
	// served on /metrics.
	Metrics *metrics.Metrics

	BuildVersion string
	Logger       *slog.Logger
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	cfg       RouterConfig
	proxy     *httputil.ReverseProxy // nil when no upstream is configured
	clientIP  httpx.KeyFunc
	startTime time.Time
}

func NewRouter(cfg RouterConfig) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		clientIP:  httpx.RemoteIP,
		startTime: time.Now(),
	}
	if cfg.TrustForwarded {
		r.clientIP = httpx.ForwardedIP
	}
	if cfg.Upstream != nil {
		r.proxy = NewProxy(cfg.Upstream)
	}
	if cfg.Metrics != nil {
		r.cfg.Auth = cfg.Metrics.Authorizer(cfg.Auth)
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(cfg.Logger),
		CORS,
	}

	return r
}

// ApplyRoutes registers every route and builds the global middleware chain.
// Call it once before serving.
func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerSession()
	r.registerResources()

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		http.Error(w, "routes not applied", http.StatusInternalServerError)
		return
	}
	r.handler.ServeHTTP(w, req)
}

// handle registers h on the mux, instrumented under its pattern.
func (r *Router) handle(pattern string, h http.Handler) {
	if r.cfg.Metrics != nil {
		h = r.cfg.Metrics.Instrument(pattern, h)
	}
	r.Mux.Handle(pattern, h)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limit by IP (monitoring systems poll frequently)
	r.handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion),
			httpx.RateLimitByIP(r.cfg.Limits.Public, r.clientIP),
		),
	)
	r.handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.cfg.Keys, r.proxy != nil),
			httpx.RateLimitByIP(r.cfg.Limits.Public, r.clientIP),
		),
	)

	// Swagger documentation - public limit by IP
	r.handle("GET /swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(r.cfg.Limits.Public, r.clientIP),
		),
	)

	if r.cfg.Metrics != nil {
		r.handle("GET /metrics",
			httpx.Chain(r.cfg.Metrics.Handler(),
				httpx.RateLimitByIP(r.cfg.Limits.Public, r.clientIP),
			),
		)
	}
}

func (r *Router) registerSession() {
	// GET /v1/session - any valid token, session limit by subject
	r.handle("GET /v1/session",
		httpx.Chain(SessionHandler(),
			httpx.Authenticate(r.cfg.Auth),
			httpx.RateLimitBySubject(r.cfg.Limits.Session, r.clientIP),
		),
	)
}

func (r *Router) registerResources() {
	var upstream http.Handler = UpstreamDisabledHandler()
	if r.proxy != nil {
		upstream = r.proxy
	}

	// Each route needs its own permission; the gate runs before the limiter
	// so the limiter can key on the verified subject.
	for _, route := range ResourceRoutes {
		r.handle(route.Pattern(),
			httpx.Chain(upstream,
				httpx.RequirePermission(r.cfg.Auth, route.Permission),
				httpx.RateLimitBySubject(r.cfg.Limits.Proxy, r.clientIP),
			),
		)
	}
}
