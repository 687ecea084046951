package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type readyKeys bool

func (k readyKeys) Ready() bool { return bool(k) }

func TestRouter_ChainBuiltOnce(t *testing.T) {
	r := NewRouter(RouterConfig{
		Keys:         readyKeys(true),
		Limits:       httpx.DefaultRateLimits(),
		BuildVersion: "test",
		Logger:       slogx.Discard(),
	})

	var built, served int
	r.middlewares = append(r.middlewares, func(next http.Handler) http.Handler {
		built++
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			served++
			next.ServeHTTP(w, req)
		})
	})
	r.ApplyRoutes()

	for range 3 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, built)
	require.Equal(t, 3, served)
}

func TestRouter_ServeBeforeApply(t *testing.T) {
	r := NewRouter(RouterConfig{Keys: readyKeys(true), Logger: slogx.Discard()})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
