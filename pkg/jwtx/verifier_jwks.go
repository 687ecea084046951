package jwtx

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier validates JWTs signed by an identity provider with one of the
// keys it publishes in its JWKS.
type JWKSVerifier struct {
	keys   KeyResolver
	alg    string
	method jwt.SigningMethod
	issuer string
	aud    []string
	leeway time.Duration
	now    func() time.Time
}

// NewVerifier creates a verifier for the configured algorithm. It refuses
// "none" and symmetric algorithms outright.
func NewVerifier(opts VerifyOptions) (*JWKSVerifier, error) {
	if opts.Keys == nil {
		return nil, errors.New("jwtx: verifier needs a key resolver")
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmRS256
	}
	method, err := asymmetricMethod(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &JWKSVerifier{
		keys:   opts.Keys,
		alg:    opts.Algorithm,
		method: method,
		issuer: opts.Issuer,
		aud:    opts.Audience,
		leeway: opts.Leeway,
		now:    opts.Now,
	}, nil
}

// NewVerifierRS256 creates an RS256 verifier, the common case for hosted
// identity providers.
func NewVerifierRS256(keys KeyResolver, issuer string, aud []string) *JWKSVerifier {
	v, err := NewVerifier(VerifyOptions{Keys: keys, Algorithm: AlgorithmRS256, Issuer: issuer, Audience: aud})
	if err != nil {
		// Only reachable with a nil resolver.
		panic(err)
	}
	return v
}

// Algorithm returns the accepted signing algorithm.
func (v *JWKSVerifier) Algorithm() string { return v.alg }

// Verify validates the JWT string and returns its parsed Claims.
//
// The checks run in a fixed order and stop at the first failure: syntax,
// algorithm, key lookup, signature, then exp/nbf, iss and aud.
func (v *JWKSVerifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	tok, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	// Algorithm first, before we go anywhere near the key store. This is
	// what stops "none" and HS256-with-the-public-key tricks.
	if tok.Header.Alg != v.alg {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrAlgMismatch, tok.Header.Alg, v.alg)
	}

	// Need the kid to know which key to use
	if tok.Header.Kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
	}

	key, err := v.keys.Key(ctx, tok.Header.Kid)
	if err != nil {
		if errors.Is(err, ErrNoKey) && !errors.Is(err, ErrUnknownKID) {
			err = fmt.Errorf("%w: kid %q: %w", ErrUnknownKID, tok.Header.Kid, err)
		}
		return nil, err
	}
	if key.Alg != "" && key.Alg != v.alg {
		return nil, fmt.Errorf("%w: key %q is for %q", ErrAlgMismatch, key.Kid, key.Alg)
	}
	if key.Public == nil {
		return nil, fmt.Errorf("%w: key %q has no usable public key", ErrUnknownKID, key.Kid)
	}
	if !keyFitsMethod(key.Public, v.method) {
		return nil, fmt.Errorf("%w: key %q has type %T", ErrAlgMismatch, key.Kid, key.Public)
	}

	if err := v.method.Verify(tok.SigningInput, tok.Signature, key.Public); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}

	var claims Claims
	if err := json.Unmarshal(tok.Payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}

	// Now check all the claim requirements
	if err := claims.ValidateExpiryAt(v.now().UTC(), v.leeway); err != nil {
		return nil, err
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return nil, err
	}

	return &claims, nil
}

// SupportedAlgorithm reports whether alg can be used with a JWKSVerifier.
func SupportedAlgorithm(alg string) bool {
	_, err := asymmetricMethod(alg)
	return err == nil
}

// asymmetricMethod resolves alg to a golang-jwt signing method and rejects
// everything that is not a public-key algorithm.
func asymmetricMethod(alg string) (jwt.SigningMethod, error) {
	m := jwt.GetSigningMethod(alg)
	switch m.(type) {
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS, *jwt.SigningMethodECDSA, *jwt.SigningMethodEd25519:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q is not an accepted asymmetric algorithm", ErrAlgMismatch, alg)
	}
}

func keyFitsMethod(pub crypto.PublicKey, m jwt.SigningMethod) bool {
	switch m.(type) {
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		_, ok := pub.(*rsa.PublicKey)
		return ok
	case *jwt.SigningMethodECDSA:
		_, ok := pub.(*ecdsa.PublicKey)
		return ok
	case *jwt.SigningMethodEd25519:
		_, ok := pub.(ed25519.PublicKey)
		return ok
	}
	return false
}
