package authsdk

import (
	"context"
	"io"
	"net/http"
)

// GetSession returns the subject and permissions the gate sees in token.
func (c *SDKClient) GetSession(ctx context.Context, token string) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/session", token, nil)
	if err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}

	return &session, nil
}

// Do sends a bearer-authenticated request through the gate. Gate denials
// (401, 403, 429) are returned as *APIError with the body already consumed;
// any other response, including upstream errors, is handed back untouched.
func (c *SDKClient) Do(ctx context.Context, token, method, path string, body io.Reader) (*http.Response, error) {
	resp, err := c.doRequest(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return nil, readError(resp)
	}
	return resp, nil
}
