// Package gate decides whether an HTTP request carrying a bearer token may
// reach a protected handler.
package gate

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

var (
	ErrMissingHeader       = errors.New("gate: authorization header missing")
	ErrInvalidHeaderFormat = errors.New("gate: authorization header is not \"Bearer <token>\"")
)

// Options configures a Gate.
type Options struct {
	// Verifier checks the bearer token. Required.
	Verifier jwtx.Verifier

	// AcceptScope lets entries of the OAuth2 scope claim satisfy a required
	// permission in addition to the permissions claim.
	AcceptScope bool
}

// Gate authenticates and authorizes requests. It holds no per-request state
// and is safe for concurrent use; the only shared mutable state is whatever
// key cache sits behind the verifier.
type Gate struct {
	verifier    jwtx.Verifier
	acceptScope bool
}

// New creates a Gate.
func New(opts Options) (*Gate, error) {
	if opts.Verifier == nil {
		return nil, errors.New("gate: verifier is required")
	}
	return &Gate{verifier: opts.Verifier, acceptScope: opts.AcceptScope}, nil
}

// Authorize runs the checks in order and stops at the first failure:
// header presence, header shape, token verification, then the permission.
// An empty required permission asks for authentication only.
func (g *Gate) Authorize(ctx context.Context, header http.Header, required string) Result {
	token, denied := bearerToken(header)
	if denied != nil {
		return *denied
	}

	claims, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return Deny(KindOf(err), err)
	}

	granted := claims.Permissions
	if g.acceptScope {
		granted = claims.PermissionSet()
	}
	if err := check(granted, required); err != nil {
		return Deny(KindMissingPermission, err)
	}

	return Verified{Claims: claims, Permissions: slices.Clone(granted)}
}

// AuthorizeRequest is Authorize for an incoming request.
func (g *Gate) AuthorizeRequest(r *http.Request, required string) Result {
	return g.Authorize(r.Context(), r.Header, required)
}

func bearerToken(header http.Header) (string, *Denied) {
	values := header.Values("Authorization")
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		d := Deny(KindMissingHeader, ErrMissingHeader)
		return "", &d
	}
	if len(values) > 1 {
		d := Deny(KindInvalidHeaderFormat, ErrInvalidHeaderFormat)
		return "", &d
	}

	parts := strings.Split(values[0], " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		d := Deny(KindInvalidHeaderFormat, ErrInvalidHeaderFormat)
		return "", &d
	}
	return parts[1], nil
}
