package cryptox

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"strings"
)

// MinRSABits is the smallest RSA modulus we are willing to generate.
const MinRSABits = 2048

// GenerateKey generates a private key suited to the JWS algorithm alg.
// RS* and PS* get a 2048 bit RSA key, ES256/384/512 an ECDSA key on the
// matching curve and EdDSA an Ed25519 key.
func GenerateKey(alg string) (crypto.Signer, error) {
	switch {
	case strings.HasPrefix(alg, "RS"), strings.HasPrefix(alg, "PS"):
		return GenerateRSAKey(MinRSABits)
	case alg == "ES256":
		return GenerateECKey(elliptic.P256())
	case alg == "ES384":
		return GenerateECKey(elliptic.P384())
	case alg == "ES512":
		return GenerateECKey(elliptic.P521())
	case alg == "EdDSA":
		return GenerateEd25519Key()
	}
	return nil, fmt.Errorf("cryptox: no key type for algorithm %q", alg)
}

// GenerateRSAKey generates an RSA private key. Common sizes are 2048, 3072
// and 4096 bits.
func GenerateRSAKey(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSABits {
		return nil, fmt.Errorf("cryptox: RSA key size must be at least %d bits", MinRSABits)
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}
	return key, nil
}

// GenerateECKey generates an ECDSA private key on curve.
func GenerateECKey(curve elliptic.Curve) (*ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate ECDSA key: %w", err)
	}
	return key, nil
}

// GenerateEd25519Key generates an Ed25519 private key.
func GenerateEd25519Key() (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}
	return key, nil
}
