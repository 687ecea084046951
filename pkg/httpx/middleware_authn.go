package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// Authorizer decides on a request. *gate.Gate implements it.
type Authorizer interface {
	Authorize(ctx context.Context, header http.Header, required string) gate.Result
}

// Authenticate lets any caller with a valid token through, whatever its
// permissions.
func Authenticate(a Authorizer) Middleware {
	return RequirePermission(a, "")
}

// WriteDenied answers a denied request: RFC 6750 challenge, no-store and the
// JSON error body with the public message. The fine-grained kind only goes
// to the log.
func WriteDenied(w http.ResponseWriter, r *http.Request, d gate.Denied, required string) {
	slogx.FromContext(r.Context()).Warn("request denied",
		"kind", d.Kind.String(),
		"status", d.Status,
		"permission", required,
		"err", d.Err,
	)

	w.Header().Set("WWW-Authenticate", challenge(d, required))
	WriteError(w, d.Status, d.Message)
}

func challenge(d gate.Denied, required string) string {
	switch {
	case d.Kind == gate.KindMissingHeader:
		// No credentials at all: RFC 6750 says no error code.
		return "Bearer"
	case d.Status == http.StatusForbidden:
		return `Bearer error="insufficient_scope", scope="` + quoteSafe(required) + `"`
	default:
		return `Bearer error="invalid_token", error_description="` + d.Message + `"`
	}
}

func quoteSafe(s string) string {
	return strings.NewReplacer(`"`, "", `\`, "").Replace(s)
}
