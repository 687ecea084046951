package httpx

import (
	"context"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeySubject     ctxKey = "subject"
	CtxKeyPermissions ctxKey = "permissions"
	CtxKeyClaims      ctxKey = "claims"
)

// ContextWithClaims stores verified claims for downstream handlers, with the
// permissions claim as the caller's permissions.
func ContextWithClaims(ctx context.Context, c *jwtx.Claims) context.Context {
	return contextWith(ctx, c, c.Permissions)
}

// ContextWithVerified stores a gate decision. The permissions are the set
// the gate evaluated, so scope grants are included when the gate accepts
// them.
func ContextWithVerified(ctx context.Context, v gate.Verified) context.Context {
	perms := v.Permissions
	if perms == nil {
		perms = v.Claims.Permissions
	}
	return contextWith(ctx, v.Claims, perms)
}

func contextWith(ctx context.Context, c *jwtx.Claims, perms []string) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyPermissions, append([]string{}, perms...))
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the verified claims, if the request passed a gate.
func ClaimsFromContext(ctx context.Context) (*jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(*jwtx.Claims)
	return c, ok
}

// SubjectFromContext returns the verified "sub" claim or "".
func SubjectFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}

// PermissionsFromContext returns the permissions the caller was granted.
func PermissionsFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyPermissions).([]string); ok {
		return v
	}
	return nil
}
