package jwtx

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeyResolver looks up a published key by kid. KeySet answers from memory
// only, KeyStore refreshes from the identity provider on a miss.
type KeyResolver interface {
	Key(ctx context.Context, kid string) (VerificationKey, error)
}

// VerificationKey is a published JWK with its public key already parsed.
type VerificationKey struct {
	JWK
	Public crypto.PublicKey
}

type keyEntry struct {
	jwk JWK
	pub crypto.PublicKey
}

func (e keyEntry) key() VerificationKey {
	return VerificationKey{JWK: e.jwk, Public: e.pub}
}

// KeySet holds the published verification keys in memory. It is safe for
// concurrent use: ResetFromJWKS builds the replacement outside the lock and
// swaps it in one go, so readers see either the old or the new set in full.
type KeySet struct {
	mu        sync.RWMutex
	jwks      JWKS
	keys      map[string]keyEntry
	fetchedAt time.Time
	gen       uint64
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		keys: make(map[string]keyEntry),
	}
}

// AddJWK adds a single JWK to the set. Used for static key configuration
// and tests; remote sets go through ResetFromJWKS.
func (k *KeySet) AddJWK(j JWK) error {
	if j.Kid == "" {
		return errors.New("jwtx: jwk without kid")
	}
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[j.Kid] = keyEntry{jwk: j, pub: pub}
	k.jwks.Keys = append(k.jwks.Keys, j)
	k.gen++
	return nil
}

// Get returns the parsed public key for the given kid.
func (k *KeySet) Get(kid string) (crypto.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if e, ok := k.keys[kid]; ok {
		return e.pub, nil
	}
	return nil, ErrNoKey
}

// Key implements KeyResolver against the in-memory set only.
func (k *KeySet) Key(_ context.Context, kid string) (VerificationKey, error) {
	key, ok, _ := k.lookup(kid)
	if !ok {
		return VerificationKey{}, ErrNoKey
	}
	return key, nil
}

// lookup returns the key for kid together with the generation of the set
// it was read from.
func (k *KeySet) lookup(kid string) (VerificationKey, bool, uint64) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	e, ok := k.keys[kid]
	return e.key(), ok, k.gen
}

// PublicJWKS returns a snapshot of the usable keys in provider order.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK(nil), k.jwks.Keys...)}
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}

// FetchedAt reports when the current set was installed by ResetFromJWKS.
func (k *KeySet) FetchedAt() time.Time {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.fetchedAt
}

// Generation increases every time the set changes.
func (k *KeySet) Generation() uint64 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.gen
}

// ResetFromJWKS replaces all keys from a JWKS document. Entries that cannot
// be used for verification (no kid, unsupported type, encryption keys, bad
// encoding) are skipped and their count returned. A document without a
// single usable key is rejected and the current set is kept.
func (k *KeySet) ResetFromJWKS(jwks JWKS) (skipped int, err error) {
	return k.reset(jwks, time.Now())
}

func (k *KeySet) reset(jwks JWKS, at time.Time) (int, error) {
	keys := make(map[string]keyEntry, len(jwks.Keys))
	usable := make([]JWK, 0, len(jwks.Keys))
	skipped := 0

	for _, j := range jwks.Keys {
		if j.Kid == "" || (j.Use != "" && j.Use != "sig") {
			skipped++
			continue
		}
		pub, err := j.PublicKey()
		if err != nil {
			skipped++
			continue
		}
		if _, dup := keys[j.Kid]; dup {
			skipped++
			continue
		}
		keys[j.Kid] = keyEntry{jwk: j, pub: pub}
		usable = append(usable, j)
	}

	if len(keys) == 0 {
		return skipped, fmt.Errorf("jwtx: jwks has no usable signing keys (%d skipped)", skipped)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.keys = keys
	k.jwks = JWKS{Keys: usable}
	k.fetchedAt = at
	k.gen++

	return skipped, nil
}
