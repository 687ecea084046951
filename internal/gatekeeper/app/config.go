package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

type Config struct {
	Issuer      string        // Required: expected iss claim, e.g. https://tenant.auth0.com/
	Audience    []string      // Required: expected aud, comma separated in the environment
	JWKSURL     string        // Optional: JWKS endpoint (default: <issuer>/.well-known/jwks.json)
	Algorithm   string        // Optional: the one accepted signing algorithm (default: RS256)
	JWKSTTL     time.Duration // Optional: key cache lifetime (default: 10m)
	JWKSTimeout time.Duration // Optional: bound on a single JWKS fetch (default: 5s)
	Leeway      time.Duration // Optional: clock skew allowance for exp/nbf (default: 0)
	AcceptScope bool          // Optional: let the scope claim satisfy permissions (default: false)
	UpstreamURL string        // Optional: protected application; proxy routes are off when empty

	RateLimits     httpx.RateLimits // Optional: RATELIMIT_{PUBLIC,SESSION,PROXY}_{REQUESTS,WINDOW,BURST}
	TrustForwarded bool             // Optional: key IP limits on X-Forwarded-For (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:      os.Getenv("GATEKEEPER_ISSUER"),
		Audience:    SplitList(os.Getenv("GATEKEEPER_AUDIENCE")),
		JWKSURL:     os.Getenv("GATEKEEPER_JWKS_URL"),
		Algorithm:   getEnvOrDefault("GATEKEEPER_ALGORITHM", jwtx.AlgorithmRS256),
		JWKSTTL:     getEnvDurationOrDefault("GATEKEEPER_JWKS_TTL", jwtx.DefaultJWKSTTL),
		JWKSTimeout: getEnvDurationOrDefault("GATEKEEPER_JWKS_TIMEOUT", jwtx.DefaultJWKSFetchTimeout),
		Leeway:      getEnvDurationOrDefault("GATEKEEPER_LEEWAY", 0),
		AcceptScope: getEnvBoolOrDefault("GATEKEEPER_ACCEPT_SCOPE", false),
		UpstreamURL: os.Getenv("GATEKEEPER_UPSTREAM_URL"),

		RateLimits:     loadRateLimits(httpx.DefaultRateLimits()),
		TrustForwarded: getEnvBoolOrDefault("GATEKEEPER_TRUST_FORWARDED", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWKSURL == "" && cfg.Issuer != "" {
		cfg.JWKSURL = DefaultJWKSURL(cfg.Issuer)
	}

	return cfg
}

// DefaultJWKSURL is where Auth0 and most OIDC providers publish their keys.
func DefaultJWKSURL(issuer string) string {
	return strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if c.Issuer == "" {
		errs = append(errs, errors.New("GATEKEEPER_ISSUER is required"))
	}
	if len(c.Audience) == 0 {
		errs = append(errs, errors.New("GATEKEEPER_AUDIENCE is required"))
	}
	if err := checkURL("GATEKEEPER_JWKS_URL", c.JWKSURL, true); err != nil {
		errs = append(errs, err)
	}
	if c.UpstreamURL != "" {
		if err := checkURL("GATEKEEPER_UPSTREAM_URL", c.UpstreamURL, false); err != nil {
			errs = append(errs, err)
		}
	}
	if !jwtx.SupportedAlgorithm(c.Algorithm) {
		errs = append(errs, fmt.Errorf("GATEKEEPER_ALGORITHM %q is not supported", c.Algorithm))
	}
	if c.JWKSTTL <= 0 {
		errs = append(errs, errors.New("GATEKEEPER_JWKS_TTL must be positive"))
	}
	if c.JWKSTimeout <= 0 {
		errs = append(errs, errors.New("GATEKEEPER_JWKS_TIMEOUT must be positive"))
	}
	if c.Leeway < 0 {
		errs = append(errs, errors.New("GATEKEEPER_LEEWAY must not be negative"))
	}
	for _, p := range []struct {
		name  string
		limit httpx.RateLimit
	}{
		{"PUBLIC", c.RateLimits.Public},
		{"SESSION", c.RateLimits.Session},
		{"PROXY", c.RateLimits.Proxy},
	} {
		if !p.limit.Valid() {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s values must be positive", p.name))
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}

func loadRateLimits(def httpx.RateLimits) httpx.RateLimits {
	return httpx.RateLimits{
		Public:  loadRateLimit("PUBLIC", def.Public),
		Session: loadRateLimit("SESSION", def.Session),
		Proxy:   loadRateLimit("PROXY", def.Proxy),
	}
}

func loadRateLimit(profile string, def httpx.RateLimit) httpx.RateLimit {
	prefix := "RATELIMIT_" + profile + "_"
	return httpx.RateLimit{
		RequestsPerWindow: getEnvIntOrDefault(prefix+"REQUESTS", def.RequestsPerWindow),
		Window:            getEnvDurationOrDefault(prefix+"WINDOW", def.Window),
		Burst:             getEnvIntOrDefault(prefix+"BURST", def.Burst),
	}
}

func checkURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host", name)
	}
	return nil
}

// SplitList splits a comma-separated value, trimming blanks and dropping
// empty entries.
func SplitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
