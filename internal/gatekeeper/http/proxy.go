package http

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// Headers the upstream receives from the gate.
const (
	HeaderSubject     = "X-Auth-Subject"
	HeaderPermissions = "X-Auth-Permissions"

	authHeaderPrefix = "X-Auth-"
)

// NewProxy forwards gated requests to target. The upstream trusts the
// X-Auth-* headers, so anything the client sent under that prefix is
// dropped along with the bearer token before the verified identity is set.
//
//	@Summary		Casting agency resources
//	@Description	Proxied to the upstream once the token carries the route's permission (get:actors, post:actors, patch:actors, delete:actors and the same for movies)
//	@Description	The upstream receives X-Auth-Subject, X-Auth-Permissions and X-Request-ID instead of the bearer token
//	@Tags			Resources
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]any	"upstream response"
//	@Failure		401	{object}	httpx.ErrorBody	"authorization_header_missing, invalid_header, token_expired, invalid_claims"
//	@Failure		403	{object}	httpx.ErrorBody	"unauthorized"
//	@Failure		429	{object}	httpx.ErrorBody	"rate_limit_exceeded"
//	@Failure		502	{object}	httpx.ErrorBody	"upstream_unavailable"
//	@Failure		503	{object}	httpx.ErrorBody	"upstream_not_configured"
//	@Router			/actors [get]
//	@Router			/actors [post]
//	@Router			/actors/{id} [patch]
//	@Router			/actors/{id} [delete]
//	@Router			/movies [get]
//	@Router			/movies [post]
//	@Router			/movies/{id} [patch]
//	@Router			/movies/{id} [delete]
func NewProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()

			h := pr.Out.Header
			h.Del("Authorization")
			for name := range h {
				if strings.HasPrefix(http.CanonicalHeaderKey(name), authHeaderPrefix) {
					h.Del(name)
				}
			}

			ctx := pr.In.Context()
			h.Set(HeaderSubject, httpx.SubjectFromContext(ctx))
			h.Set(HeaderPermissions, strings.Join(httpx.PermissionsFromContext(ctx), ","))
			if id := slogx.RequestIDFromContext(ctx); id != "" {
				h.Set(slogx.RequestIDHeader, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slogx.FromContext(r.Context()).Error("upstream request failed", "err", err)
			httpx.WriteError(w, http.StatusBadGateway, "upstream_unavailable")
		},
	}
}

// UpstreamDisabledHandler stands in for the proxy when no upstream is set.
func UpstreamDisabledHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusServiceUnavailable, "upstream_not_configured")
	}
}
