package authsdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
)

// Public messages the gate puts in its error bodies.
const (
	MessageHeaderMissing = "authorization_header_missing"
	MessageInvalidHeader = "invalid_header"
	MessageTokenExpired  = "token_expired"
	MessageInvalidClaims = "invalid_claims"
	MessageUnauthorized  = "unauthorized"
	MessageRateLimited   = "rate_limit_exceeded"
)

// APIError is a non-success answer from the gate.
type APIError struct {
	StatusCode int
	Message    string

	// Challenge is the WWW-Authenticate header, if any.
	Challenge string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports a 401 from the gate.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports a 403 from the gate.
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

func hasStatus(err error, code int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == code
}

// parseErrorResponse turns an error response into an *APIError. The gate's
// {success, error, message} body is used when present, otherwise the status
// text stands in for the message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Challenge:  resp.Header.Get("WWW-Authenticate"),
	}

	var errBody httpx.ErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		apiErr.Message = errBody.Message
	}

	return apiErr
}

func readError(resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	return parseErrorResponse(resp, body)
}
