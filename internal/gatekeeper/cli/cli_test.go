package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/app"
	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/cli"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx/jwtxtest"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, app.BuildVersion+"\n", out)
}

func TestVerify(t *testing.T) {
	p := jwtxtest.NewProvider(t)
	t.Setenv("GATEKEEPER_ISSUER", p.Issuer)
	t.Setenv("GATEKEEPER_AUDIENCE", p.Audience)
	t.Setenv("GATEKEEPER_JWKS_URL", p.JWKSURL())

	producer := p.Token(t, "auth0|producer", "get:actors", "delete:movies")

	tests := []struct {
		name        string
		args        []string
		allowed     bool
		kind        string
		status      int
		message     string
		wantSubject string
	}{
		{
			name:        "authenticated",
			args:        []string{"verify", producer},
			allowed:     true,
			status:      200,
			wantSubject: "auth0|producer",
		},
		{
			name:        "has permission",
			args:        []string{"verify", producer, "--permission", "delete:movies"},
			allowed:     true,
			status:      200,
			wantSubject: "auth0|producer",
		},
		{
			name:    "missing permission",
			args:    []string{"verify", producer, "-p", "post:movies"},
			kind:    "missing_permission",
			status:  403,
			message: "unauthorized",
		},
		{
			name:    "garbage",
			args:    []string{"verify", "abc"},
			kind:    "malformed_token",
			status:  401,
			message: "invalid_header",
		},
		{
			name:    "wrong audience flag",
			args:    []string{"verify", producer, "--audience", "someone-else"},
			kind:    "invalid_audience",
			status:  401,
			message: "invalid_claims",
		},
		{
			name:        "audience flag list with spaces",
			args:        []string{"verify", producer, "--audience", "someone-else, " + p.Audience},
			allowed:     true,
			status:      200,
			wantSubject: "auth0|producer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, cli.ErrDenied)
			}

			var d cli.Decision
			require.NoError(t, json.Unmarshal([]byte(out), &d), out)
			require.Equal(t, tt.allowed, d.Allowed)
			require.Equal(t, tt.kind, d.Kind)
			require.Equal(t, tt.status, d.Status)
			require.Equal(t, tt.message, d.Message)
			if tt.wantSubject != "" {
				require.NotNil(t, d.Claims)
				require.Equal(t, tt.wantSubject, d.Claims.Subject)
			}
		})
	}
}

func TestVerify_RequiresConfig(t *testing.T) {
	t.Setenv("GATEKEEPER_ISSUER", "")
	t.Setenv("GATEKEEPER_AUDIENCE", "")
	t.Setenv("GATEKEEPER_JWKS_URL", "")

	_, err := run(t, "verify", "abc")
	require.ErrorContains(t, err, "GATEKEEPER_ISSUER is required")
	require.NotErrorIs(t, err, cli.ErrDenied)
}
