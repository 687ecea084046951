package jwtx

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims the gate cares about. Anything else the
// provider puts in the token is ignored.
type Claims struct {
	jwt.RegisteredClaims

	// Permissions granted through RBAC, e.g. ["get:actors", "post:movies"].
	// Auth0 adds this claim when "Add Permissions in the Access Token" is on.
	Permissions []string `json:"permissions,omitempty"`

	// Scope is the OAuth2 space-delimited scope string.
	Scope string `json:"scope,omitempty"`

	// AuthorizedParty is the client the token was issued to.
	AuthorizedParty string `json:"azp,omitempty"`
}

// NewAccessClaims builds minimally-correct claims. Mostly useful for tests
// and the local token tooling, real tokens come from the provider.
func NewAccessClaims(
	subject string,
	permissions []string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Permissions: permissions,
	}
}

// PermissionSet returns the permissions granted by the token: the
// permissions claim plus the entries of the scope string, deduplicated,
// order preserved. Never nil.
func (c *Claims) PermissionSet() []string {
	out := make([]string, 0, len(c.Permissions))
	seen := make(map[string]struct{}, len(c.Permissions))
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range c.Permissions {
		add(p)
	}
	for _, p := range strings.Fields(c.Scope) {
		add(p)
	}
	return out
}

// HasPermission reports exact membership in PermissionSet.
func (c *Claims) HasPermission(p string) bool {
	return slices.Contains(c.PermissionSet(), p)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
// A token without exp is treated as expired: the gate never accepts
// credentials without a lifetime.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC(), 0)
}

// ValidateExpiryAt is ValidateExpiry at a given instant with a grace period
// for clock skew.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	// Check expired (exp)
	if c.ExpiresAt == nil || !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	// Check if a valid token isn't used before it is valid (nbf)
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
