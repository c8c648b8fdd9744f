package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/modules/engine"
	"github.com/vantez/engine/internal/modules/fixedincome"
	"github.com/vantez/engine/internal/modules/simulation"
	"github.com/vantez/engine/internal/scheduler"
	testingpkg "github.com/vantez/engine/internal/testing"
	"github.com/vantez/engine/internal/workers"
)

func newTestServer(t *testing.T, jobs ...scheduler.Job) *Server {
	t.Helper()

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	macro := domain.DefaultMacro()

	return New(Config{
		Log:            logger,
		CacheDB:        testingpkg.NewTestDB(t, "cache"),
		Port:           0,
		DevMode:        true,
		Engine:         engine.NewService(macro, nil, workers.NewPool(2), logger),
		Projector:      fixedincome.NewProjector(macro, logger),
		BenchmarkRates: fixedincome.StaticRate(10),
		Simulator:      simulation.NewSimulator(2, logger),
		Scheduler:      scheduler.New(logger),
		Jobs:           jobs,
	})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestSystemStatus(t *testing.T) {
	s := newTestServer(t, testingpkg.NewMockJob("refresh_benchmark_rate", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data SystemStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Data.Status)
	assert.Greater(t, resp.Data.Goroutines, 0)
	require.NotNil(t, resp.Data.Macro)
	assert.Equal(t, "2026", resp.Data.Macro.Version)
	require.NotNil(t, resp.Data.CacheDB)
	assert.Greater(t, resp.Data.CacheDB.PageSize, int64(0))
	assert.Equal(t, []string{"refresh_benchmark_rate"}, resp.Data.Jobs)
}

func TestTriggerJob(t *testing.T) {
	ok := testingpkg.NewMockJob("ok", nil)
	failing := testingpkg.NewMockJob("failing", errors.New("boom"))
	s := newTestServer(t, ok, failing)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/system/jobs/ok", http.StatusOK},
		{"/api/system/jobs/failing", http.StatusInternalServerError},
		{"/api/system/jobs/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.path, nil)
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		assert.Equal(t, tt.status, w.Code, tt.path)
	}

	assert.Equal(t, 1, ok.Runs())
	assert.Equal(t, 1, failing.Runs())
}

func TestModuleRoutesMounted(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/macro", ""},
		{http.MethodGet, "/api/simulations/scenarios", ""},
		{http.MethodGet, "/api/fixed-income/benchmark", ""},
		{http.MethodPost, "/api/assets/analyze", `{"ticker":"WEGE3","current_price":50}`},
		{http.MethodPost, "/api/portfolio/summary", `{"positions":[]}`},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/assets/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
