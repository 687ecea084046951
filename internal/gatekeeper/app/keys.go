package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/gatekeeper/internal/gatekeeper/metrics"
	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

// Auth bundles the key store and the gate built on top of it.
type Auth struct {
	Keys     *jwtx.KeyStore
	Verifier *jwtx.JWKSVerifier
	Gate     *gate.Gate
}

// InitAuth builds the JWKS-backed key store, the verifier and the gate.
//
// A non-nil m records JWKS fetches and key readiness.
//
// The key store starts empty. A warm-up fetch is attempted so readiness is
// green as soon as possible, but a failure there is only logged: the first
// request that needs a key fetches again.
func InitAuth(ctx context.Context, cfg Config, logger *slog.Logger, m *metrics.Metrics) (*Auth, error) {
	var fetcher jwtx.Fetcher = jwtx.NewHTTPFetcher(cfg.JWKSURL)
	if m != nil {
		fetcher = m.Fetcher(fetcher)
	}

	keys, err := jwtx.NewKeyStore(jwtx.KeyStoreOptions{
		Fetcher:      fetcher,
		TTL:          cfg.JWKSTTL,
		FetchTimeout: cfg.JWKSTimeout,
		Logger:       logger.With("component", "jwks"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}
	if m != nil {
		m.WatchKeys(keys)
	}

	verifier, err := jwtx.NewVerifier(jwtx.VerifyOptions{
		Keys:      keys,
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		Leeway:    cfg.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}

	g, err := gate.New(gate.Options{Verifier: verifier, AcceptScope: cfg.AcceptScope})
	if err != nil {
		return nil, fmt.Errorf("failed to create gate: %w", err)
	}

	logger.Info("token verification configured",
		"issuer", cfg.Issuer,
		"audience", cfg.Audience,
		"algorithm", verifier.Algorithm(),
		"jwks_url", cfg.JWKSURL,
		"jwks_ttl", cfg.JWKSTTL,
		"accept_scope", cfg.AcceptScope,
	)

	if err := keys.Warm(ctx); err != nil {
		logger.Warn("initial jwks fetch failed, will retry on demand", "err", err)
	}

	return &Auth{Keys: keys, Verifier: verifier, Gate: g}, nil
}
