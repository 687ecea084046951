package jwtx_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx/jwtxtest"
	"github.com/stretchr/testify/require"
)

func TestKeySet_AddAndGet(t *testing.T) {
	s := jwtxtest.NewRSASigner(t, "k1")

	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())

	require.NoError(t, ks.AddJWK(s.PublicJWK()))
	require.True(t, ks.IsReady())
	require.Equal(t, uint64(1), ks.Generation())

	pub, err := ks.Get("k1")
	require.NoError(t, err)
	require.NotNil(t, pub)

	jwk, err := ks.Key(context.Background(), "k1")
	require.NoError(t, err)
	require.Equal(t, "k1", jwk.Kid)
	require.Equal(t, pub, jwk.Public)

	_, err = ks.Get("k2")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
	_, err = ks.Key(context.Background(), "k2")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestKeySet_AddJWKRejectsMissingKid(t *testing.T) {
	jwk := jwtxtest.NewRSASigner(t, "k1").PublicJWK()
	jwk.Kid = ""

	ks := jwtx.NewKeySet()
	require.Error(t, ks.AddJWK(jwk))
	require.False(t, ks.IsReady())
}

func TestKeySet_ResetFromJWKS(t *testing.T) {
	good1 := jwtxtest.NewRSASigner(t, "good-1").PublicJWK()
	good2 := jwtxtest.NewRSASigner(t, "good-2").PublicJWK()

	noKid := good1
	noKid.Kid = ""

	enc := good1
	enc.Kid = "enc"
	enc.Use = "enc"

	dup := good2

	ks := jwtx.NewKeySet()
	skipped, err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{
		good1,
		noKid,
		enc,
		{Kty: "oct", Kid: "hmac"},
		good2,
		dup,
	}})
	require.NoError(t, err)
	require.Equal(t, 4, skipped)
	require.False(t, ks.FetchedAt().IsZero())

	snapshot := ks.PublicJWKS()
	require.Len(t, snapshot.Keys, 2)
	require.Equal(t, "good-1", snapshot.Keys[0].Kid)
	require.Equal(t, "good-2", snapshot.Keys[1].Kid)

	_, err = ks.Get("enc")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestKeySet_ResetReplacesWholeSet(t *testing.T) {
	old := jwtxtest.NewRSASigner(t, "old").PublicJWK()
	next := jwtxtest.NewRSASigner(t, "new").PublicJWK()

	ks := jwtx.NewKeySet()
	_, err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{old}})
	require.NoError(t, err)
	gen := ks.Generation()

	_, err = ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{next}})
	require.NoError(t, err)
	require.Greater(t, ks.Generation(), gen)

	_, err = ks.Get("old")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
	_, err = ks.Get("new")
	require.NoError(t, err)
}

func TestKeySet_ResetWithoutUsableKeysKeepsOldSet(t *testing.T) {
	old := jwtxtest.NewRSASigner(t, "old").PublicJWK()

	ks := jwtx.NewKeySet()
	_, err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{old}})
	require.NoError(t, err)
	gen := ks.Generation()

	skipped, err := ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{{Kty: "oct", Kid: "x"}}})
	require.Error(t, err)
	require.Equal(t, 1, skipped)
	require.Equal(t, gen, ks.Generation())

	_, err = ks.Get("old")
	require.NoError(t, err)
}
