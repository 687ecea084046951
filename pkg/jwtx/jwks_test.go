package jwtx_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestJWK_PublicKey_RSA(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwk := jwtx.NewRSAJWK("test-key-id", "sig", "RS256", &privateKey.PublicKey)
	require.Equal(t, "AQAB", jwk.E)

	pub, err := jwk.PublicKey()
	require.NoError(t, err)

	rsaPub, ok := pub.(*rsa.PublicKey)
	require.True(t, ok, "should be an RSA public key")
	require.Equal(t, privateKey.PublicKey.N, rsaPub.N)
	require.Equal(t, privateKey.PublicKey.E, rsaPub.E)
}

func TestJWK_PublicKey_EC(t *testing.T) {
	for _, curve := range []elliptic.Curve{elliptic.P256(), elliptic.P384(), elliptic.P521()} {
		t.Run(curve.Params().Name, func(t *testing.T) {
			privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
			require.NoError(t, err)

			jwk := jwtx.NewECJWK("ec", "sig", "", &privateKey.PublicKey)
			require.Equal(t, curve.Params().Name, jwk.Crv)

			pub, err := jwk.PublicKey()
			require.NoError(t, err)
			require.True(t, privateKey.PublicKey.Equal(pub))
		})
	}
}

func TestJWK_PublicKey_Ed25519(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	jwk := jwtx.NewEd25519JWK("ed", "sig", "EdDSA", publicKey)

	pub, err := jwk.PublicKey()
	require.NoError(t, err)
	require.Equal(t, publicKey, pub)
}

func TestJWK_PublicKey_Rejects(t *testing.T) {
	tests := []struct {
		name string
		jwk  jwtx.JWK
	}{
		{"unknown kty", jwtx.JWK{Kty: "oct", Kid: "k"}},
		{"rsa without modulus", jwtx.JWK{Kty: "RSA", Kid: "k", E: "AQAB"}},
		{"rsa bad base64", jwtx.JWK{Kty: "RSA", Kid: "k", N: "!!!", E: "AQAB"}},
		{"rsa exponent one", jwtx.JWK{Kty: "RSA", Kid: "k", N: "AQAB", E: "AQ"}},
		{"okp wrong curve", jwtx.JWK{Kty: "OKP", Kid: "k", Crv: "X25519", X: "AQAB"}},
		{"okp short key", jwtx.JWK{Kty: "OKP", Kid: "k", Crv: "Ed25519", X: "AQAB"}},
		{"ec unknown curve", jwtx.JWK{Kty: "EC", Kid: "k", Crv: "secp256k1", X: "AQ", Y: "AQ"}},
		{"ec point off curve", jwtx.JWK{Kty: "EC", Kid: "k", Crv: "P-256", X: "AQ", Y: "AQ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.jwk.PublicKey()
			require.Error(t, err)
		})
	}
}

func TestJWK_PEM_RSA(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwk := jwtx.NewRSAJWK("test-key-id", "sig", "RS256", &privateKey.PublicKey)

	pemStr, err := jwk.PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pemStr, "-----BEGIN PUBLIC KEY-----"))
	require.True(t, strings.HasSuffix(strings.TrimSpace(pemStr), "-----END PUBLIC KEY-----"))

	// Parse the PEM back to verify it's valid
	block, _ := pem.Decode([]byte(pemStr))
	require.NotNil(t, block, "PEM block should be valid")
	require.Equal(t, "PUBLIC KEY", block.Type)

	parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)

	rsaPubKey, ok := parsedKey.(*rsa.PublicKey)
	require.True(t, ok, "Parsed key should be an RSA public key")
	require.Equal(t, privateKey.PublicKey.N, rsaPubKey.N)
}

func TestJWKS_DecodeAuth0Document(t *testing.T) {
	// Trimmed copy of a hosted tenant's JWKS: RSA key with an x5c chain next
	// to the raw parameters.
	doc := `{"keys":[{
		"kty":"RSA","use":"sig","alg":"RS256","kid":"abc123",
		"n":"sXchDaQebHnPiGvyDOAT4saGEUetSyo9MKLOoWFsueri23bOdgWp4Dy1WlUzewbgBHod5pcM9H95GQRV3JDXboIRROSBigeC5yjU1hGzHHyXss8UDprecbAYxknTcQkhslANGRUZmdTOQ5qTRsLAt6BTYuyvVRdhS8exSZEy_c4gs_7svlJJQ4H9_NxsiIoLwAEk7-Q3UXERGYw_75IDrGA84-lA_-Ct4eTlXHBIY2EaV7t7LjJaynVJCpkv4LKjTTAumiGUIuQhrNhZLuF_RJLqHpM2kgWFLU7-VTdL1VbC2tejvcI2BlMkEpk1BzBZI0KQB0GaDWFLN-aEAw3vRw",
		"e":"AQAB",
		"x5c":["MIIC+DCCAeCgAwIBAgIJBIGjYW6hFpn2MA0GCSqGSIb3DQEBBQUAMCMxITAfBgNV"],
		"x5t":"NjVBRjY5MDlCMUIwNzU4RTA2QzZFMDQ4QzQ2MDAyQjVDNjk1RTM2Qg"
	}]}`

	var jwks jwtx.JWKS
	require.NoError(t, json.Unmarshal([]byte(doc), &jwks))
	require.Len(t, jwks.Keys, 1)

	jwk, ok := jwks.Find("abc123")
	require.True(t, ok)
	require.Equal(t, "RS256", jwk.Alg)
	require.Len(t, jwk.X5c, 1)

	_, err := jwk.PublicKey()
	require.NoError(t, err)

	_, ok = jwks.Find("nope")
	require.False(t, ok)
}
