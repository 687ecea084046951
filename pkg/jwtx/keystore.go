package jwtx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultJWKSTTL is how long a fetched key set is trusted before the next
	// lookup triggers a refresh.
	DefaultJWKSTTL = 10 * time.Minute

	// DefaultJWKSFetchTimeout bounds a single JWKS download.
	DefaultJWKSFetchTimeout = 5 * time.Second
)

// ErrKeyStoreUnavailable reports that the key set could not be fetched or
// parsed. It is distinct from ErrUnknownKID, which means the fetch worked
// but the provider does not publish the requested key.
var ErrKeyStoreUnavailable = errors.New("jwtx: key store unavailable")

// KeyStoreOptions configures a KeyStore.
type KeyStoreOptions struct {
	// Fetcher downloads the JWKS document. Required.
	Fetcher Fetcher

	// TTL is the lifetime of a fetched set (default DefaultJWKSTTL).
	TTL time.Duration

	// FetchTimeout bounds each fetch (default DefaultJWKSFetchTimeout).
	FetchTimeout time.Duration

	// Logger receives refresh events (default slog.Default()).
	Logger *slog.Logger

	// Now overrides the clock used for TTL checks.
	Now func() time.Time
}

// KeyStore caches the identity provider's JWKS and refreshes it lazily.
//
// The cache starts empty. A lookup that misses, or that finds the set past its
// TTL, triggers one fetch, swaps the new set in and looks again. Concurrent
// misses share a single in-flight fetch. When a refresh fails, keys from the
// previous set keep being served so a provider outage does not lock out
// tokens that verified a minute ago.
type KeyStore struct {
	keys    *KeySet
	fetcher Fetcher
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time

	group singleflight.Group
}

// NewKeyStore creates an empty KeyStore.
func NewKeyStore(opts KeyStoreOptions) (*KeyStore, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("jwtx: key store needs a fetcher")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultJWKSTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultJWKSFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &KeyStore{
		keys:    NewKeySet(),
		fetcher: opts.Fetcher,
		ttl:     opts.TTL,
		timeout: opts.FetchTimeout,
		logger:  opts.Logger,
		now:     opts.Now,
	}, nil
}

// NewRemoteKeyStore is a shorthand for a KeyStore backed by an HTTPFetcher.
func NewRemoteKeyStore(jwksURL string, ttl, timeout time.Duration, logger *slog.Logger) (*KeyStore, error) {
	return NewKeyStore(KeyStoreOptions{
		Fetcher:      NewHTTPFetcher(jwksURL),
		TTL:          ttl,
		FetchTimeout: timeout,
		Logger:       logger,
	})
}

// Key returns the published key for kid, refreshing the cache at most once.
func (s *KeyStore) Key(ctx context.Context, kid string) (VerificationKey, error) {
	if kid == "" {
		return VerificationKey{}, fmt.Errorf("%w: empty kid", ErrUnknownKID)
	}

	key, ok, gen := s.keys.lookup(kid)
	if ok && !s.expired() {
		return key, nil
	}

	err := s.refresh(ctx, gen)

	// Retry the lookup once against whatever set is installed now.
	if key, ok, _ := s.keys.lookup(kid); ok {
		if err != nil {
			s.logger.Warn("jwks refresh failed, serving cached key", "kid", kid, "err", err)
		}
		return key, nil
	}
	if err != nil {
		return VerificationKey{}, err
	}
	return VerificationKey{}, fmt.Errorf("%w: kid %q: %w", ErrUnknownKID, kid, ErrNoKey)
}

// Warm fetches the key set eagerly, typically at startup.
func (s *KeyStore) Warm(ctx context.Context) error {
	return s.refresh(ctx, s.keys.Generation())
}

// Ready reports whether at least one key is cached.
func (s *KeyStore) Ready() bool {
	return s.keys.IsReady()
}

// KeySet exposes the underlying cache, read-only use only.
func (s *KeyStore) KeySet() *KeySet {
	return s.keys
}

func (s *KeyStore) expired() bool {
	fetchedAt := s.keys.FetchedAt()
	if fetchedAt.IsZero() {
		return true
	}
	return s.now().After(fetchedAt.Add(s.ttl))
}

// refresh fetches a new set unless the cache already moved past the
// generation the caller saw. Callers that saw the same generation share one
// flight; the flight itself is detached from the caller's cancellation and
// bounded by the fetch timeout instead.
func (s *KeyStore) refresh(ctx context.Context, seen uint64) error {
	ch := s.group.DoChan(strconv.FormatUint(seen, 10), func() (any, error) {
		if s.keys.Generation() != seen {
			return nil, nil
		}
		return nil, s.fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrKeyStoreUnavailable, ctx.Err())
	}
}

func (s *KeyStore) fetch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	jwks, err := s.fetcher.FetchJWKS(ctx)
	if err != nil {
		s.logger.Warn("jwks fetch failed", "err", err, "duration_ms", s.now().Sub(start).Milliseconds())
		return fmt.Errorf("%w: %w", ErrKeyStoreUnavailable, err)
	}

	skipped, err := s.keys.reset(jwks, s.now())
	if err != nil {
		s.logger.Warn("jwks rejected", "err", err)
		return fmt.Errorf("%w: %w", ErrKeyStoreUnavailable, err)
	}

	s.logger.Info("jwks refreshed",
		"keys", len(jwks.Keys)-skipped,
		"skipped", skipped,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return nil
}
