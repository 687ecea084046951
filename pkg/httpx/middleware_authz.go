package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// RequirePermission guards a handler: the request reaches next only when the
// bearer token verifies and carries permission. On success the claims,
// subject and permissions are available through the context helpers.
func RequirePermission(a Authorizer, permission string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch res := a.Authorize(r.Context(), r.Header, permission).(type) {
			case gate.Verified:
				ctx := ContextWithVerified(r.Context(), res)
				ctx = slogx.With(ctx, "sub", res.Claims.Subject)
				next.ServeHTTP(w, r.WithContext(ctx))

			case gate.Denied:
				WriteDenied(w, r, res, permission)

			default:
				// Unknown result, fail closed.
				WriteDenied(w, r, gate.Deny(gate.KindInvalidSignature, nil), permission)
			}
		})
	}
}
