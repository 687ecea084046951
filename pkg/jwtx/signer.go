package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
//
// The gate never issues tokens, the identity provider does. Signers exist
// for the test provider and for local tooling that needs a token in the
// exact shape the provider would mint.
type Signer interface {
	Alg() string
	KID() string
	Sign(claims jwt.Claims) (string, error)
	PublicJWK() JWK
	Validate() error
}

// KeySigner signs with an asymmetric private key under a fixed kid.
type KeySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	header map[string]any
}

// NewSigner creates a signer for alg. The key type has to match the
// algorithm family: *rsa.PrivateKey for RS/PS, *ecdsa.PrivateKey for ES and
// ed25519.PrivateKey for EdDSA.
func NewSigner(alg, kid string, key crypto.Signer) (*KeySigner, error) {
	method, err := asymmetricMethod(alg)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, errors.New("jwtx: nil signing key")
	}
	if !keyFitsMethod(key.Public(), method) {
		return nil, fmt.Errorf("jwtx: %T cannot sign %s", key, alg)
	}
	return &KeySigner{kid: kid, method: method, key: key}, nil
}

// NewSignerFromPEM creates a signer for alg from a PEM encoded private key.
// PKCS8, PKCS1 and SEC1 blocks all work.
func NewSignerFromPEM(alg, kid string, pemKey []byte) (*KeySigner, error) {
	key, err := cryptox.ParsePrivateKeyPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	return NewSigner(alg, kid, key)
}

// NewSignerRS256 creates an RS256 signer from PEM bytes.
func NewSignerRS256(kid string, pemKey []byte) (*KeySigner, error) {
	return NewSignerFromPEM(AlgorithmRS256, kid, pemKey)
}

// GenerateSigner creates a signer for alg backed by a freshly generated key.
func GenerateSigner(alg, kid string) (*KeySigner, error) {
	key, err := cryptox.GenerateKey(alg)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	return NewSigner(alg, kid, key)
}

func (s *KeySigner) Alg() string { return s.method.Alg() }
func (s *KeySigner) KID() string { return s.kid }

// WithHeader returns a copy of the signer that sets extra JOSE header fields
// on every token. A nil value removes the field, so WithHeader("kid", nil)
// produces tokens without a kid.
func (s *KeySigner) WithHeader(name string, value any) *KeySigner {
	cp := *s
	cp.header = make(map[string]any, len(s.header)+1)
	for k, v := range s.header {
		cp.header[k] = v
	}
	cp.header[name] = value
	return &cp
}

// Sign takes your claims and turns them into a signed JWT string.
func (s *KeySigner) Sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	for k, v := range s.header {
		if v == nil {
			delete(t.Header, k)
			continue
		}
		t.Header[k] = v
	}
	return t.SignedString(s.key)
}

// SignInput signs an already assembled "header.payload" string.
func (s *KeySigner) SignInput(input string) ([]byte, error) {
	return s.method.Sign(input, s.key)
}

// PublicJWK returns a JWK for inclusion in a JWKS. This is what you'll
// publish so others can verify your tokens.
func (s *KeySigner) PublicJWK() JWK {
	switch pub := s.key.Public().(type) {
	case *rsa.PublicKey:
		return NewRSAJWK(s.kid, "sig", s.Alg(), pub)
	case *ecdsa.PublicKey:
		return NewECJWK(s.kid, "sig", s.Alg(), pub)
	case ed25519.PublicKey:
		return NewEd25519JWK(s.kid, "sig", s.Alg(), pub)
	}
	return JWK{Kid: s.kid, Alg: s.Alg()}
}

// Validate does a quick sanity check to make sure we actually have keys.
func (s *KeySigner) Validate() error {
	if s.key == nil || s.key.Public() == nil {
		return errors.New("jwtx: nil signing key")
	}
	return nil
}
