package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransactionRepository handles transaction database operations
type TransactionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		log: log.With().Str("repo", "transaction").Logger(),
	}
}

// Save persists a transaction and assigns its ID.
func (r *TransactionRepository) Save(tx *Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now().UTC().Truncate(time.Second)
	}

	query := `
		INSERT INTO transactions (id, portfolio_id, stock_id, type, quantity, price, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.PortfolioID,
		tx.StockID,
		string(tx.Type),
		tx.Quantity,
		tx.Price,
		tx.TransactionDate.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	r.log.Info().
		Str("id", tx.ID).
		Str("portfolio_id", tx.PortfolioID).
		Str("type", string(tx.Type)).
		Float64("amount", tx.Amount()).
		Msg("Transaction recorded")

	return nil
}

// GetByPortfolio returns a portfolio's transactions, most recent first, with
// the stock symbol resolved for display.
func (r *TransactionRepository) GetByPortfolio(portfolioID string) ([]Transaction, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.stock_id, s.symbol, t.type, t.quantity, t.price, t.transaction_date
		FROM transactions t
		JOIN stocks s ON t.stock_id = s.id
		WHERE t.portfolio_id = ?
		ORDER BY t.transaction_date DESC, t.rowid DESC
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		var txType, txDate string

		err := rows.Scan(
			&tx.ID,
			&tx.PortfolioID,
			&tx.StockID,
			&tx.Symbol,
			&txType,
			&tx.Quantity,
			&tx.Price,
			&txDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Type = TransactionType(txType)

		ts, err := time.Parse(time.RFC3339, txDate)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction_date timestamp %q: %w", txDate, err)
		}
		tx.TransactionDate = ts

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
