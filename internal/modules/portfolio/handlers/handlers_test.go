package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantez/engine/internal/domain"
	"github.com/vantez/engine/internal/modules/portfolio"
)

func setupRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api", NewHandler(zerolog.Nop()).RegisterRoutes)
	return router
}

func TestHandleSummary(t *testing.T) {
	router := setupRouter()
	body := `{"positions":[
		{"ticker":"ITUB4","current_price":30,"average_price":25,"quantity":100},
		{"ticker":"HGLG11","type":"FII","current_price":"R$ 160,00","average_price":150,"quantity":10},
		{"ticker":"CDB","asset_class":"FIXED_INCOME","average_price":1000,"quantity":1}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/summary", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data portfolio.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 5600, resp.Data.TotalEquity, 1e-9)
	assert.InDelta(t, 5000, resp.Data.TotalInvested, 1e-9)
	assert.InDelta(t, 600, resp.Data.ProfitLoss, 1e-9)
	assert.Equal(t, 3, resp.Data.Positions)
	require.Len(t, resp.Data.Allocation, 3)
	assert.Equal(t, domain.AssetClassEquity, resp.Data.Allocation[0].AssetClass)
	assert.Equal(t, domain.AssetClassRealEstateFund, resp.Data.Allocation[1].AssetClass)
}

func TestHandleSummary_Empty(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/summary", strings.NewReader(`{"positions":[]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data portfolio.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.TotalEquity)
	assert.Empty(t, resp.Data.Allocation)
}

func TestHandleSummary_InvalidPosition(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/summary", strings.NewReader(`{"positions":[{"quantity":1}]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRoutes(t *testing.T) {
	assert.NotPanics(t, func() { setupRouter() })
}
