// Package ledger records buy and sell transactions against portfolios.
package ledger

import "time"

// TransactionType distinguishes buys from sells.
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// Transaction is one executed trade: a quantity of a stock bought or sold
// for a portfolio at a price per unit.
type Transaction struct {
	ID              string          `json:"id"`
	PortfolioID     string          `json:"portfolio_id"`
	StockID         string          `json:"stock_id"`
	Symbol          string          `json:"symbol"`
	Type            TransactionType `json:"type"`
	Quantity        float64         `json:"quantity"`
	Price           float64         `json:"price"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// Amount returns the total value of the transaction.
func (t Transaction) Amount() float64 {
	return t.Quantity * t.Price
}
