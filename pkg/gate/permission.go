package gate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

var ErrMissingPermission = errors.New("gate: missing permission")

// CheckPermission passes when required is empty or is an exact member of
// the token's permissions claim. There is no prefix, wildcard or hierarchy
// matching: "get:actors" does not grant "get:actors:detail".
func CheckPermission(claims *jwtx.Claims, required string) error {
	return check(claims.Permissions, required)
}

// CheckGrant is CheckPermission against the permissions claim and the OAuth2
// scope string combined.
func CheckGrant(claims *jwtx.Claims, required string) error {
	return check(claims.PermissionSet(), required)
}

func check(granted []string, required string) error {
	if required == "" {
		return nil
	}
	if slices.Contains(granted, required) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrMissingPermission, required)
}
