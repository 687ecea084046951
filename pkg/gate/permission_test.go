package gate_test

import (
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestCheckPermission(t *testing.T) {
	claims := &jwtx.Claims{
		Permissions: []string{"get:actors", "get:movies"},
		Scope:       "delete:actors",
	}

	tests := []struct {
		name     string
		required string
		allowed  bool
	}{
		{"empty requirement", "", true},
		{"exact member", "get:actors", true},
		{"absent", "delete:movies", false},
		{"prefix is not enough", "get:actor", false},
		{"no wildcard", "get:*", false},
		{"case sensitive", "GET:actors", false},
		{"longer is not implied", "get:actors:detail", false},
		{"scope ignored", "delete:actors", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.CheckPermission(claims, tt.required)
			if tt.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, gate.ErrMissingPermission)
		})
	}
}

func TestCheckPermission_NoPermissionsClaim(t *testing.T) {
	claims := &jwtx.Claims{}
	require.NoError(t, gate.CheckPermission(claims, ""))
	require.ErrorIs(t, gate.CheckPermission(claims, "get:actors"), gate.ErrMissingPermission)
}

func TestCheckGrant(t *testing.T) {
	claims := &jwtx.Claims{
		Permissions: []string{"get:actors"},
		Scope:       "openid delete:actors",
	}
	require.NoError(t, gate.CheckGrant(claims, "get:actors"))
	require.NoError(t, gate.CheckGrant(claims, "delete:actors"))
	require.ErrorIs(t, gate.CheckGrant(claims, "delete:movies"), gate.ErrMissingPermission)
}
