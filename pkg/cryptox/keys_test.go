package cryptox_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		alg   string
		check func(t *testing.T, key any)
	}{
		{"RS256", func(t *testing.T, key any) {
			rk, ok := key.(*rsa.PrivateKey)
			require.True(t, ok)
			require.Equal(t, cryptox.MinRSABits, rk.N.BitLen())
		}},
		{"PS384", func(t *testing.T, key any) {
			_, ok := key.(*rsa.PrivateKey)
			require.True(t, ok)
		}},
		{"ES256", func(t *testing.T, key any) {
			ek, ok := key.(*ecdsa.PrivateKey)
			require.True(t, ok)
			require.Equal(t, elliptic.P256(), ek.Curve)
		}},
		{"ES384", func(t *testing.T, key any) {
			ek, ok := key.(*ecdsa.PrivateKey)
			require.True(t, ok)
			require.Equal(t, elliptic.P384(), ek.Curve)
		}},
		{"ES512", func(t *testing.T, key any) {
			ek, ok := key.(*ecdsa.PrivateKey)
			require.True(t, ok)
			require.Equal(t, elliptic.P521(), ek.Curve)
		}},
		{"EdDSA", func(t *testing.T, key any) {
			_, ok := key.(ed25519.PrivateKey)
			require.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			key, err := cryptox.GenerateKey(tt.alg)
			require.NoError(t, err)
			tt.check(t, key)
		})
	}

	_, err := cryptox.GenerateKey("HS256")
	require.Error(t, err)
}

func TestGenerateRSAKeyRejectsTooSmall(t *testing.T) {
	_, err := cryptox.GenerateRSAKey(1024)
	require.Error(t, err)
	require.Contains(t, err.Error(), "at least 2048 bits")
}

func TestPrivateKeyPEM_RoundTrip(t *testing.T) {
	for _, alg := range []string{"RS256", "ES256", "EdDSA"} {
		t.Run(alg, func(t *testing.T) {
			key, err := cryptox.GenerateKey(alg)
			require.NoError(t, err)

			data, err := cryptox.MarshalPrivateKeyPEM(key)
			require.NoError(t, err)

			block, _ := pem.Decode(data)
			require.NotNil(t, block)
			require.Equal(t, "PRIVATE KEY", block.Type)

			parsed, err := cryptox.ParsePrivateKeyPEM(data)
			require.NoError(t, err)
			require.True(t, parsed.Public().(interface{ Equal(crypto.PublicKey) bool }).Equal(key.Public()))
		})
	}
}

func TestParsePrivateKeyPEM_LegacyBlocks(t *testing.T) {
	rsaKey, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	ecKey, err := cryptox.GenerateECKey(elliptic.P256())
	require.NoError(t, err)
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		block *pem.Block
	}{
		{"PKCS1", &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)}},
		{"SEC1", &pem.Block{Type: "EC PRIVATE KEY", Bytes: ecDER}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := cryptox.ParsePrivateKeyPEM(pem.EncodeToMemory(tt.block))
			require.NoError(t, err)
			require.NotNil(t, key)
		})
	}
}

func TestParsePrivateKeyPEM_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not pem", []byte("not pem")},
		{"wrong type", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1}})},
		{"corrupt body", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cryptox.ParsePrivateKeyPEM(tt.data)
			require.Error(t, err)
		})
	}
}

func TestMarshalPublicKeyPEM(t *testing.T) {
	key, err := cryptox.GenerateKey("ES384")
	require.NoError(t, err)

	data, err := cryptox.MarshalPublicKeyPEM(key.Public())
	require.NoError(t, err)

	block, _ := pem.Decode(data)
	require.NotNil(t, block)
	require.Equal(t, "PUBLIC KEY", block.Type)

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	require.True(t, pub.(*ecdsa.PublicKey).Equal(key.Public()))
}
