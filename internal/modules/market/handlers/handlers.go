// Package handlers provides HTTP handlers for the stock registry.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gthiam/portfolio-analyzer/internal/domain"
	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
	"github.com/gthiam/portfolio-analyzer/internal/modules/portfolio"
)

// Handler handles stock registry HTTP requests
type Handler struct {
	service   *portfolio.Service
	stockRepo *market.StockRepository
	log       zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *portfolio.Service, stockRepo *market.StockRepository, log zerolog.Logger) *Handler {
	return &Handler{
		service:   service,
		stockRepo: stockRepo,
		log:       log.With().Str("handler", "market").Logger(),
	}
}

type addStockRequest struct {
	Symbol       string  `json:"symbol"`
	CompanyName  string  `json:"company_name"`
	Sector       string  `json:"sector"`
	CurrentPrice float64 `json:"current_price"`
}

// HandleAddStock upserts a stock by symbol
func (h *Handler) HandleAddStock(w http.ResponseWriter, r *http.Request) {
	var req addStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stock, err := h.service.AddStock(req.Symbol, req.CompanyName, req.Sector, req.CurrentPrice)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// HandleListStocks returns all registered stocks
func (h *Handler) HandleListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stockRepo.GetAll()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if stocks == nil {
		stocks = []market.Stock{}
	}
	h.writeJSON(w, http.StatusOK, stocks)
}

// HandleGetStock returns one stock by symbol
func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, err := h.stockRepo.GetBySymbol(symbol)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if stock == nil {
		h.writeError(w, http.StatusNotFound, "stock not found")
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

type updatePriceRequest struct {
	Price float64 `json:"price"`
}

// HandleUpdatePrice sets a stock's current price
func (h *Handler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var req updatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateStockPrice(symbol, req.Price); err != nil {
		h.writeServiceError(w, err)
		return
	}

	stock, err := h.stockRepo.GetBySymbol(symbol)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// Helper methods

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Msg("Stock operation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}
