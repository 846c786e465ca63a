package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolios", func(r chi.Router) {
		r.Post("/", h.HandleCreatePortfolio)
		r.Get("/", h.HandleListPortfolios)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetPortfolio)
			r.Delete("/", h.HandleDeletePortfolio)
			r.Get("/report", h.HandleGetReport)
			r.Post("/positions", h.HandleAddPosition)
			r.Get("/transactions", h.HandleGetTransactions)
		})
	})
}
