package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all stock registry routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stocks", func(r chi.Router) {
		r.Post("/", h.HandleAddStock)
		r.Get("/", h.HandleListStocks)
		r.Get("/{symbol}", h.HandleGetStock)
		r.Put("/{symbol}/price", h.HandleUpdatePrice)
	})
}
