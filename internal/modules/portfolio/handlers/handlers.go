// Package handlers provides HTTP handlers for portfolio management.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gthiam/portfolio-analyzer/internal/domain"
	"github.com/gthiam/portfolio-analyzer/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

type createPortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreatePortfolio creates a new empty portfolio
func (h *Handler) HandleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.service.CreatePortfolio(req.Name, req.Description)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, p)
}

// HandleListPortfolios returns all portfolios in summary form
func (h *Handler) HandleListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.service.GetAllPortfolios()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if portfolios == nil {
		portfolios = []portfolio.Portfolio{}
	}
	h.writeJSON(w, http.StatusOK, portfolios)
}

// HandleGetPortfolio returns one portfolio with its positions
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.GetPortfolio(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if p == nil {
		h.writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	h.writeJSON(w, http.StatusOK, p)
}

// HandleDeletePortfolio removes a portfolio and its positions
func (h *Handler) HandleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeletePortfolio(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !deleted {
		h.writeError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetReport returns the aggregate valuation report for a portfolio
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.service.Report(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

type addPositionRequest struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
}

// HandleAddPosition opens a new position in a portfolio
func (h *Handler) HandleAddPosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req addPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	position, err := h.service.AddPosition(id, req.Symbol, req.Quantity, req.PurchasePrice)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, position)
}

// HandleGetTransactions returns a portfolio's trade journal
func (h *Handler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	transactions, err := h.service.Transactions(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, transactions)
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

// writeServiceError maps the error taxonomy onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error().Err(err).Msg("Portfolio operation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}
