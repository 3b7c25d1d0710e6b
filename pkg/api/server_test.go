package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/pkg/config"
	"travel_planner/pkg/fixture"
	"travel_planner/pkg/graph"
	"travel_planner/pkg/routing"
)

func testServer(t *testing.T, cfg config.HTTPConfig) *httptest.Server {
	t.Helper()
	eng := routing.NewEngine(graph.MustBuild(fixture.Small()), nil)
	logger := slog.New(slog.DiscardHandler)
	h := NewHandlers(eng, NewStatsResponse(eng.Stats()), logger)
	ts := httptest.NewServer(NewServer(cfg, h, logger).Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Routes(t *testing.T) {
	ts := testServer(t, config.HTTPConfig{MaxConcurrent: 4, CORSOrigin: "*"})

	resp, err := http.Post(ts.URL+"/api/v1/route", "application/json", strings.NewReader(`{"start":1,"goal":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(ts.URL + "/api/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ts := testServer(t, config.HTTPConfig{MaxConcurrent: 1})

	resp, err := http.Get(ts.URL + "/api/v1/route")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMiddleware_ConcurrencyLimit(t *testing.T) {
	sem := make(chan struct{}, 1)
	sem <- struct{}{}
	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run while saturated")
	}, sem, config.HTTPConfig{}, slog.New(slog.DiscardHandler))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	sem := make(chan struct{}, 1)
	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, sem, config.HTTPConfig{}, slog.New(slog.DiscardHandler))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sem, "semaphore slot must be released")
}

func TestMiddleware_RequestTimeout(t *testing.T) {
	sem := make(chan struct{}, 1)
	var deadline time.Time
	var ok bool
	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
		<-r.Context().Done()
		assert.ErrorIs(t, r.Context().Err(), context.DeadlineExceeded)
	}, sem, config.HTTPConfig{RequestTimeout: 10 * time.Millisecond}, slog.New(slog.DiscardHandler))

	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.True(t, ok)
	assert.False(t, deadline.IsZero())
}
