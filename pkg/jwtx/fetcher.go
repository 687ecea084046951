package jwtx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxJWKSBytes caps the JWKS document size we are willing to read.
const maxJWKSBytes = 1 << 20

// Fetcher retrieves the identity provider's key set.
type Fetcher interface {
	FetchJWKS(ctx context.Context) (JWKS, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (JWKS, error)

func (f FetcherFunc) FetchJWKS(ctx context.Context) (JWKS, error) { return f(ctx) }

// HTTPFetcher downloads a JWKS document from a well-known URL.
type HTTPFetcher struct {
	URL        string
	HTTPClient *http.Client
}

// NewHTTPFetcher creates a fetcher for the given JWKS URL. The client timeout
// is a backstop only, the key store bounds every fetch with its own deadline.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchJWKS performs a single GET of the JWKS document.
func (f *HTTPFetcher) FetchJWKS(ctx context.Context) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwks endpoint returned HTTP %d: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return JWKS{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return jwks, nil
}
