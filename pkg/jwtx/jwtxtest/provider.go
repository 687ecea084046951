// Package jwtxtest runs a fake identity provider for tests: an httptest
// server publishing a JWKS, plus helpers to mint tokens the way a hosted
// provider would.
package jwtxtest

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	// JWKSPath is where the provider publishes its keys.
	JWKSPath = "/.well-known/jwks.json"

	// DefaultAudience is the API identifier tokens are minted for.
	DefaultAudience = "casting-agency"
)

// Provider is a fake identity provider.
type Provider struct {
	Server   *httptest.Server
	Issuer   string
	Audience string

	fetches atomic.Int64

	mu        sync.Mutex
	signer    *jwtx.KeySigner
	published []jwtx.JWK
	status    int
	delay     time.Duration
	body      []byte
}

// NewProvider starts a provider with one RS256 key ("key-1") and registers
// its shutdown with t.Cleanup.
func NewProvider(t testing.TB) *Provider {
	t.Helper()

	p := &Provider{Audience: DefaultAudience}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serveHTTP))
	t.Cleanup(p.Server.Close)

	p.Issuer = p.Server.URL + "/"
	p.signer = NewRSASigner(t, "key-1")
	p.published = []jwtx.JWK{p.signer.PublicJWK()}

	return p
}

// NewRSASigner generates a fresh 2048-bit RS256 signer.
func NewRSASigner(t testing.TB, kid string) *jwtx.KeySigner {
	t.Helper()

	s, err := jwtx.GenerateSigner(jwtx.AlgorithmRS256, kid)
	require.NoError(t, err)
	return s
}

// JWKSURL is the absolute URL of the published key set.
func (p *Provider) JWKSURL() string {
	return p.Server.URL + JWKSPath
}

// Fetches counts the JWKS downloads served so far.
func (p *Provider) Fetches() int {
	return int(p.fetches.Load())
}

// Signer returns the signer tokens are currently minted with.
func (p *Provider) Signer() *jwtx.KeySigner {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signer
}

// Rotate generates a new signing key under kid and makes it current. With
// keepOld the previous key stays published next to the new one, the way
// providers overlap keys during a rotation.
func (p *Provider) Rotate(t testing.TB, kid string, keepOld bool) *jwtx.KeySigner {
	t.Helper()

	s := NewRSASigner(t, kid)

	p.mu.Lock()
	defer p.mu.Unlock()
	if keepOld {
		p.published = append(p.published, s.PublicJWK())
	} else {
		p.published = []jwtx.JWK{s.PublicJWK()}
	}
	p.signer = s
	return s
}

// Publish adds extra keys to the JWKS document.
func (p *Provider) Publish(keys ...jwtx.JWK) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, keys...)
}

// FailWith makes the JWKS endpoint answer with status. Zero restores normal
// service.
func (p *Provider) FailWith(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

// ServeRaw replaces the JWKS document with body. Nil restores normal service.
func (p *Provider) ServeRaw(body []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.body = body
}

// SetDelay slows every JWKS response down by d.
func (p *Provider) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
}

// Claims returns claims that pass verification against this provider for
// the next hour.
func (p *Provider) Claims(subject string, permissions ...string) jwtx.Claims {
	return jwtx.NewAccessClaims(
		subject,
		permissions,
		time.Hour,
		p.Issuer,
		[]string{p.Audience},
		time.Now().UTC(),
	)
}

// Token mints a valid token for subject with the given permissions.
func (p *Provider) Token(t testing.TB, subject string, permissions ...string) string {
	t.Helper()
	return p.Mint(t, p.Claims(subject, permissions...))
}

// Mint signs arbitrary claims with the current key.
func (p *Provider) Mint(t testing.TB, claims jwt.Claims) string {
	t.Helper()
	tok, err := p.Signer().Sign(claims)
	require.NoError(t, err)
	return tok
}

// UnsignedToken builds an alg "none" token with the given kid. A dummy
// signature segment is appended so the token is syntactically complete and
// has to be turned away on its algorithm.
func UnsignedToken(t testing.TB, kid string, claims jwt.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return s + b64("unsigned")
}

// HS256Token builds an HMAC token keyed with secret. Passing the RSA
// modulus as the secret reproduces the classic key-confusion attack.
func HS256Token(t testing.TB, kid string, secret []byte, claims jwt.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(secret)
	require.NoError(t, err)
	return s
}

// RawToken assembles a compact token from literal header and payload JSON
// and a signature made by signer over them. Used to produce claims with the
// wrong types, which typed claims cannot express.
func RawToken(t testing.TB, signer *jwtx.KeySigner, header, payload string) string {
	t.Helper()
	input := b64(header) + "." + b64(payload)

	sig, err := signer.SignInput(input)
	require.NoError(t, err)
	return input + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func (p *Provider) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != JWKSPath {
		http.NotFound(w, r)
		return
	}
	p.fetches.Add(1)

	p.mu.Lock()
	status, delay, body := p.status, p.delay, p.body
	doc := jwtx.JWKS{Keys: append([]jwtx.JWK(nil), p.published...)}
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		http.Error(w, strings.ToLower(http.StatusText(status)), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if body != nil {
		_, _ = w.Write(body)
		return
	}
	_ = json.NewEncoder(w).Encode(doc)
}
