package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GATEKEEPER_ISSUER", "https://casting.eu.auth0.com/")
	t.Setenv("GATEKEEPER_AUDIENCE", "casting-agency")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	require.Equal(t, "https://casting.eu.auth0.com/.well-known/jwks.json", cfg.JWKSURL)
	require.Equal(t, []string{"casting-agency"}, cfg.Audience)
	require.Equal(t, "RS256", cfg.Algorithm)
	require.Equal(t, 10*time.Minute, cfg.JWKSTTL)
	require.Equal(t, 5*time.Second, cfg.JWKSTimeout)
	require.Zero(t, cfg.Leeway)
	require.False(t, cfg.AcceptScope)
	require.Empty(t, cfg.UpstreamURL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimits)
	require.False(t, cfg.TrustForwarded)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GATEKEEPER_ISSUER", "https://issuer.example/")
	t.Setenv("GATEKEEPER_AUDIENCE", " api-a, api-b ,,")
	t.Setenv("GATEKEEPER_JWKS_URL", "http://keys.internal/jwks")
	t.Setenv("GATEKEEPER_ALGORITHM", "ES256")
	t.Setenv("GATEKEEPER_JWKS_TTL", "1m")
	t.Setenv("GATEKEEPER_JWKS_TIMEOUT", "2")
	t.Setenv("GATEKEEPER_LEEWAY", "30s")
	t.Setenv("GATEKEEPER_ACCEPT_SCOPE", "true")
	t.Setenv("GATEKEEPER_UPSTREAM_URL", "http://api:9000")
	t.Setenv("GATEKEEPER_TRUST_FORWARDED", "1")
	t.Setenv("RATELIMIT_SESSION_REQUESTS", "3")
	t.Setenv("RATELIMIT_SESSION_WINDOW", "10s")
	t.Setenv("RATELIMIT_PROXY_BURST", "7")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	require.Equal(t, []string{"api-a", "api-b"}, cfg.Audience)
	require.Equal(t, "http://keys.internal/jwks", cfg.JWKSURL)
	require.Equal(t, "ES256", cfg.Algorithm)
	require.Equal(t, time.Minute, cfg.JWKSTTL)
	require.Equal(t, 2*time.Second, cfg.JWKSTimeout)
	require.Equal(t, 30*time.Second, cfg.Leeway)
	require.True(t, cfg.AcceptScope)
	require.Equal(t, "http://api:9000", cfg.UpstreamURL)
	require.Equal(t, 9090, cfg.Port)
	require.True(t, cfg.TrustForwarded)
	require.Equal(t, httpx.RateLimit{RequestsPerWindow: 3, Window: 10 * time.Second, Burst: 20}, cfg.RateLimits.Session)
	require.Equal(t, 7, cfg.RateLimits.Proxy.Burst)
}

func TestLoadConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("GATEKEEPER_JWKS_TTL", "soon")
	t.Setenv("GATEKEEPER_ACCEPT_SCOPE", "maybe")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Minute, cfg.JWKSTTL)
	require.False(t, cfg.AcceptScope)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Issuer:      "https://issuer.example/",
			Audience:    []string{"api"},
			JWKSURL:     "https://issuer.example/.well-known/jwks.json",
			Algorithm:   "RS256",
			JWKSTTL:     time.Minute,
			JWKSTimeout: time.Second,
			RateLimits:  httpx.DefaultRateLimits(),
			Port:        8080,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing issuer", func(c *Config) { c.Issuer = "" }, "GATEKEEPER_ISSUER is required"},
		{"missing audience", func(c *Config) { c.Audience = nil }, "GATEKEEPER_AUDIENCE is required"},
		{"missing jwks url", func(c *Config) { c.JWKSURL = "" }, "GATEKEEPER_JWKS_URL is required"},
		{"jwks url scheme", func(c *Config) { c.JWKSURL = "ftp://issuer.example/keys" }, "must be an http(s) URL"},
		{"upstream no host", func(c *Config) { c.UpstreamURL = "http://" }, "GATEKEEPER_UPSTREAM_URL has no host"},
		{"symmetric algorithm", func(c *Config) { c.Algorithm = "HS256" }, `"HS256" is not supported`},
		{"alg none", func(c *Config) { c.Algorithm = "none" }, `"none" is not supported`},
		{"zero ttl", func(c *Config) { c.JWKSTTL = 0 }, "GATEKEEPER_JWKS_TTL must be positive"},
		{"zero timeout", func(c *Config) { c.JWKSTimeout = 0 }, "GATEKEEPER_JWKS_TIMEOUT must be positive"},
		{"negative leeway", func(c *Config) { c.Leeway = -time.Second }, "GATEKEEPER_LEEWAY must not be negative"},
		{"zero burst", func(c *Config) { c.RateLimits.Session.Burst = 0 }, "RATELIMIT_SESSION values must be positive"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT 70000 is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("reports everything", func(t *testing.T) {
		err := Config{}.Validate()
		require.ErrorContains(t, err, "GATEKEEPER_ISSUER")
		require.ErrorContains(t, err, "GATEKEEPER_AUDIENCE")
		require.ErrorContains(t, err, "PORT")
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"api", []string{"api"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , a,,", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}
