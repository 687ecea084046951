package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/gate"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fixedAuthorizer struct{ res gate.Result }

func (f fixedAuthorizer) Authorize(context.Context, http.Header, string) gate.Result { return f.res }

type readiness bool

func (r readiness) Ready() bool { return bool(r) }

func TestAuthorizer_CountsDecisions(t *testing.T) {
	m := New("test")

	allow := m.Authorizer(fixedAuthorizer{gate.Verified{Claims: &jwtx.Claims{}}})
	deny := m.Authorizer(fixedAuthorizer{gate.Deny(gate.KindExpired, jwtx.ErrExpired)})

	_, ok := allow.Authorize(context.Background(), http.Header{}, "").(gate.Verified)
	require.True(t, ok, "result passes through unchanged")
	for range 2 {
		deny.Authorize(context.Background(), http.Header{}, "get:actors")
	}

	require.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("allowed", "")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("denied", "expired")))
}

func TestFetcher_CountsOutcomes(t *testing.T) {
	m := New("test")

	ok := m.Fetcher(jwtx.FetcherFunc(func(context.Context) (jwtx.JWKS, error) {
		return jwtx.JWKS{}, nil
	}))
	failing := m.Fetcher(jwtx.FetcherFunc(func(context.Context) (jwtx.JWKS, error) {
		return jwtx.JWKS{}, errors.New("connection refused")
	}))

	_, err := ok.FetchJWKS(context.Background())
	require.NoError(t, err)
	_, err = failing.FetchJWKS(context.Background())
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("error")))
	require.Equal(t, 1, testutil.CollectAndCount(m.fetchDuration))
}

func TestInstrument_LabelsByRoute(t *testing.T) {
	m := New("test")
	h := m.Instrument("GET /actors", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/actors?page=2", nil))

	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /actors", "get", "403")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New("v1.2.3")
	m.WatchKeys(readiness(true))
	m.Authorizer(fixedAuthorizer{gate.Deny(gate.KindMissingHeader, gate.ErrMissingHeader)}).
		Authorize(context.Background(), http.Header{}, "")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	for _, want := range []string{
		`gatekeeper_decisions_total{kind="missing_header",outcome="denied",version="v1.2.3"} 1`,
		`gatekeeper_jwks_ready{version="v1.2.3"} 1`,
		"go_goroutines",
	} {
		require.True(t, strings.Contains(text, want), "missing %q", want)
	}
}
