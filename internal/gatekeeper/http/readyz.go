package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
)

// ReadyzHandler answers 503 until the provider's key set has been loaded.
// The key store loads lazily, so the first gated request also flips this.
//
//	@Summary		Readiness check
//	@Description	Reports whether verification keys are loaded and whether an upstream is configured
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status ok, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status degraded, checks"
//	@Router			/readyz [get]
func ReadyzHandler(
	startTime time.Time,
	version string,
	keys KeyReadiness,
	upstreamConfigured bool,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			JWKS:     "ok",
			Upstream: "disabled",
		}
		if upstreamConfigured {
			checks.Upstream = "configured"
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if !keys.Ready() {
			checks.JWKS = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
