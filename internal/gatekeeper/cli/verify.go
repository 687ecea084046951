package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/app"
	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	"github.com/spf13/cobra"
)

// ErrDenied is returned by verify when the gate would refuse the token.
// The decision has already been printed; callers only need the exit status.
var ErrDenied = errors.New("token denied")

// Decision is what verify prints.
type Decision struct {
	Allowed    bool         `json:"allowed"`
	Permission string       `json:"permission,omitempty"`
	Kind       string       `json:"kind,omitempty"`
	Status     int          `json:"status"`
	Message    string       `json:"message,omitempty"`
	Error      string       `json:"error,omitempty"`
	Claims     *jwtx.Claims `json:"claims,omitempty"`
}

type verifyFlags struct {
	permission string
	issuer     string
	audience   string
	jwksURL    string
	algorithm  string
}

func newVerifyCommand() *cobra.Command {
	var f verifyFlags

	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify an access token the way the gate would",
		Long: "Verify an access token against the configured JWKS and print the decision as JSON.\n" +
			"Settings default to the GATEKEEPER_* environment; flags override them.\n" +
			"Exits with status 1 when the token would be denied.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			f.apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			auth, err := app.InitAuth(cmd.Context(), cfg, slogx.Discard(), nil)
			if err != nil {
				return err
			}

			header := http.Header{}
			header.Set("Authorization", "Bearer "+strings.TrimSpace(args[0]))
			res := auth.Gate.Authorize(cmd.Context(), header, f.permission)

			d := decide(res, f.permission)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("failed to write decision: %w", err)
			}

			if !d.Allowed {
				return ErrDenied
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.permission, "permission", "p", "", "Permission the token must carry, e.g. delete:actors. Empty checks authentication only.")
	cmd.Flags().StringVar(&f.issuer, "issuer", "", "Expected issuer. Overrides GATEKEEPER_ISSUER.")
	cmd.Flags().StringVar(&f.audience, "audience", "", "Expected audience, comma separated. Overrides GATEKEEPER_AUDIENCE.")
	cmd.Flags().StringVar(&f.jwksURL, "jwks-url", "", "JWKS endpoint. Overrides GATEKEEPER_JWKS_URL.")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "Accepted signing algorithm. Overrides GATEKEEPER_ALGORITHM.")

	return cmd
}

func (f verifyFlags) apply(cfg *app.Config) {
	if f.issuer != "" {
		cfg.Issuer = f.issuer
		if f.jwksURL == "" && os.Getenv("GATEKEEPER_JWKS_URL") == "" {
			cfg.JWKSURL = app.DefaultJWKSURL(f.issuer)
		}
	}
	if f.audience != "" {
		cfg.Audience = app.SplitList(f.audience)
	}
	if f.jwksURL != "" {
		cfg.JWKSURL = f.jwksURL
	}
	if f.algorithm != "" {
		cfg.Algorithm = f.algorithm
	}
}

func decide(res gate.Result, permission string) Decision {
	switch r := res.(type) {
	case gate.Verified:
		return Decision{
			Allowed:    true,
			Permission: permission,
			Status:     http.StatusOK,
			Claims:     r.Claims,
		}
	case gate.Denied:
		d := Decision{
			Permission: permission,
			Kind:       r.Kind.String(),
			Status:     r.Status,
			Message:    r.Message,
		}
		if r.Err != nil {
			d.Error = r.Err.Error()
		}
		return d
	default:
		return Decision{Permission: permission, Status: http.StatusUnauthorized, Error: "unknown result"}
	}
}
