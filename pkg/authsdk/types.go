package authsdk

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// JWKS is "ok" once the provider's key set has been loaded
	JWKS string `json:"jwks"`

	// Upstream is "configured" when proxy routes are on, "disabled" otherwise
	Upstream string `json:"upstream,omitempty"`
}

// ============================================================================
// Session Types
// ============================================================================

// SessionResponse describes the verified caller.
type SessionResponse struct {
	Success     bool     `json:"success"`
	Subject     string   `json:"subject"`
	Permissions []string `json:"permissions"`

	// ExpiresAt is the token's exp as a Unix timestamp
	ExpiresAt int64 `json:"expires_at,omitempty"`
}
