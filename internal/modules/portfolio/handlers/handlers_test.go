package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gthiam/portfolio-analyzer/internal/modules/ledger"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
	"github.com/gthiam/portfolio-analyzer/internal/modules/portfolio"
)

func setupRouter(t *testing.T) (chi.Router, *portfolio.Service) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, market.InitSchema(db))
	require.NoError(t, portfolio.InitSchema(db))
	require.NoError(t, ledger.InitSchema(db))

	log := zerolog.New(nil).Level(zerolog.Disabled)
	service := portfolio.NewService(
		portfolio.NewPortfolioRepository(db, log),
		portfolio.NewPositionRepository(db, log),
		market.NewStockRepository(db, log),
		ledger.NewTransactionRepository(db, log),
		log,
	)

	r := chi.NewRouter()
	NewHandler(service, log).RegisterRoutes(r)
	return r, service
}

func doJSON(t *testing.T, r chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCreatePortfolio(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/portfolios", map[string]string{
		"name":        "Tech",
		"description": "Technology holdings",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var p portfolio.Portfolio
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Tech", p.Name)
}

func TestHandleCreatePortfolio_EmptyName(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/portfolios", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreatePortfolio_MalformedBody(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/portfolios", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListPortfolios(t *testing.T) {
	r, service := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/portfolios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	_, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodGet, "/portfolios", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var portfolios []portfolio.Portfolio
	require.NoError(t, json.NewDecoder(w.Body).Decode(&portfolios))
	assert.Len(t, portfolios, 1)
}

func TestHandleGetPortfolio(t *testing.T) {
	r, service := setupRouter(t)

	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/portfolios/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got portfolio.Portfolio
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, p.ID, got.ID)
}

func TestHandleGetPortfolio_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/portfolios/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeletePortfolio(t *testing.T) {
	r, service := setupRouter(t)

	p, err := service.CreatePortfolio("Doomed", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/portfolios/"+p.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/portfolios/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeletePortfolio_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/portfolios/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAddPosition(t *testing.T) {
	r, service := setupRouter(t)

	_, err := service.AddStock("AAPL", "Apple Inc.", "Technology", 150)
	require.NoError(t, err)
	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/portfolios/"+p.ID+"/positions", map[string]interface{}{
		"symbol":         "AAPL",
		"quantity":       10,
		"purchase_price": 140,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var pos portfolio.Position
	require.NoError(t, json.NewDecoder(w.Body).Decode(&pos))
	assert.NotEmpty(t, pos.ID)
	assert.Equal(t, "AAPL", pos.Stock.Symbol)
}

func TestHandleAddPosition_InvalidQuantity(t *testing.T) {
	r, service := setupRouter(t)

	_, err := service.AddStock("AAPL", "Apple Inc.", "Technology", 150)
	require.NoError(t, err)
	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/portfolios/"+p.ID+"/positions", map[string]interface{}{
		"symbol":         "AAPL",
		"quantity":       0,
		"purchase_price": 140,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAddPosition_UnknownStock(t *testing.T) {
	r, service := setupRouter(t)

	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/portfolios/"+p.ID+"/positions", map[string]interface{}{
		"symbol":         "NOPE",
		"quantity":       10,
		"purchase_price": 140,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetReport(t *testing.T) {
	r, service := setupRouter(t)

	_, err := service.AddStock("AAPL", "Apple Inc.", "Technology", 150)
	require.NoError(t, err)
	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)
	_, err = service.AddPosition(p.ID, "AAPL", 10, 140)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/portfolios/"+p.ID+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report portfolio.Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, 1500.0, report.TotalValue)
	assert.Equal(t, 1400.0, report.TotalCost)
	assert.Equal(t, 100.0, report.TotalPnL)
}

func TestHandleGetReport_UnknownPortfolio(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/portfolios/no-such-id/report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetTransactions(t *testing.T) {
	r, service := setupRouter(t)

	_, err := service.AddStock("AAPL", "Apple Inc.", "Technology", 150)
	require.NoError(t, err)
	p, err := service.CreatePortfolio("Tech", "")
	require.NoError(t, err)
	_, err = service.AddPosition(p.ID, "AAPL", 10, 140)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/portfolios/%s/transactions", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var transactions []ledger.Transaction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&transactions))
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.TransactionBuy, transactions[0].Type)
}
