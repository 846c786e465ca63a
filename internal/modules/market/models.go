// Package market manages the system-wide stock registry: reference data and
// current prices for every security positions can be opened against.
package market

import "time"

// Stock represents a listed security with its current price.
// The ID is assigned by the repository when the stock is first saved;
// Symbol is the natural identity key.
type Stock struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	CompanyName  string    `json:"company_name"`
	Sector       string    `json:"sector"`
	CurrentPrice float64   `json:"current_price"`
	LastUpdated  time.Time `json:"last_updated"`
}
