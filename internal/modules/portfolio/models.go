// Package portfolio manages portfolios, their positions and the valuation
// calculations derived from them.
package portfolio

import (
	"time"

	"github.com/gthiam/portfolio-analyzer/internal/modules/market"
)

// Position is a holding of one stock: a quantity bought at a fixed price.
// Value and P&L are never stored; they are derived from the stock's current
// price at the moment of calculation.
type Position struct {
	ID            string       `json:"id"`
	Stock         market.Stock `json:"stock"`
	Quantity      float64      `json:"quantity"`
	PurchasePrice float64      `json:"purchase_price"`
	PurchaseDate  time.Time    `json:"purchase_date"`
}

// Portfolio is a named collection of positions. Positions keep insertion
// order and the same stock may appear more than once.
type Portfolio struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CreationDate time.Time  `json:"creation_date"`
	Positions    []Position `json:"positions,omitempty"`
}
