package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
)

// SessionHandler godoc
//
// Echoes the verified caller. It must sit behind httpx.Authenticate or
// httpx.RequirePermission.
//
//	@Summary		Current session
//	@Description	Returns the subject, granted permissions and expiry of the bearer token
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.SessionResponse
//	@Failure		401	{object}	httpx.ErrorBody	"authorization_header_missing, invalid_header, token_expired, invalid_claims"
//	@Failure		429	{object}	httpx.ErrorBody	"rate_limit_exceeded"
//	@Router			/v1/session [get]
func SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, authsdk.MessageInvalidHeader)
			return
		}

		perms := httpx.PermissionsFromContext(r.Context())
		if perms == nil {
			perms = []string{}
		}

		response := authsdk.SessionResponse{
			Success:     true,
			Subject:     claims.Subject,
			Permissions: perms,
		}
		if claims.ExpiresAt != nil {
			response.ExpiresAt = claims.ExpiresAt.Unix()
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
