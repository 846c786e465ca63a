package market

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gthiam/portfolio-analyzer/internal/domain"
)

// StockRepository handles stock database operations
type StockRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *sql.DB, log zerolog.Logger) *StockRepository {
	return &StockRepository{
		db:  db,
		log: log.With().Str("repo", "stock").Logger(),
	}
}

// NormalizeSymbol canonicalizes a ticker symbol for storage and lookups.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Save persists a new stock and assigns its ID.
func (r *StockRepository) Save(stock *Stock) error {
	stock.Symbol = NormalizeSymbol(stock.Symbol)
	if stock.ID == "" {
		stock.ID = uuid.NewString()
	}
	if stock.LastUpdated.IsZero() {
		stock.LastUpdated = time.Now().UTC().Truncate(time.Second)
	}

	query := `
		INSERT INTO stocks (id, symbol, company_name, sector, current_price, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		stock.ID,
		stock.Symbol,
		stock.CompanyName,
		stock.Sector,
		stock.CurrentPrice,
		stock.LastUpdated.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}

	r.log.Info().Str("symbol", stock.Symbol).Str("id", stock.ID).Msg("Stock saved")
	return nil
}

// GetBySymbol returns a stock by symbol, or nil if not found.
func (r *StockRepository) GetBySymbol(symbol string) (*Stock, error) {
	query := `
		SELECT id, symbol, company_name, sector, current_price, last_updated
		FROM stocks
		WHERE symbol = ?
	`

	rows, err := r.db.Query(query, NormalizeSymbol(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to query stock by symbol: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err() // Stock not found
	}

	stock, err := scanStock(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock: %w", err)
	}

	return &stock, nil
}

// GetAll returns all stocks ordered by symbol.
func (r *StockRepository) GetAll() ([]Stock, error) {
	query := `
		SELECT id, symbol, company_name, sector, current_price, last_updated
		FROM stocks
		ORDER BY symbol
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}

// UpdatePrice sets the current price of a stock and refreshes last_updated.
// Returns domain.ErrStockNotFound when no stock has that symbol.
func (r *StockRepository) UpdatePrice(symbol string, price float64) error {
	symbol = NormalizeSymbol(symbol)
	now := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)

	query := "UPDATE stocks SET current_price = ?, last_updated = ? WHERE symbol = ?"

	result, err := r.db.Exec(query, price, now, symbol)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrStockNotFound
	}

	r.log.Debug().
		Str("symbol", symbol).
		Float64("price", price).
		Msg("Stock price updated")

	return nil
}

// GetStale returns stocks whose price has not been updated since the cutoff.
func (r *StockRepository) GetStale(cutoff time.Time) ([]Stock, error) {
	query := `
		SELECT id, symbol, company_name, sector, current_price, last_updated
		FROM stocks
		WHERE last_updated < ?
		ORDER BY last_updated
	`

	rows, err := r.db.Query(query, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query stale stocks: %w", err)
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stale stocks: %w", err)
	}

	return stocks, nil
}

// scanStock scans a database row into a Stock struct
func scanStock(rows *sql.Rows) (Stock, error) {
	var stock Stock
	var companyName, sector sql.NullString
	var lastUpdated string

	err := rows.Scan(
		&stock.ID,
		&stock.Symbol,
		&companyName,
		&sector,
		&stock.CurrentPrice,
		&lastUpdated,
	)
	if err != nil {
		return stock, err
	}

	if companyName.Valid {
		stock.CompanyName = companyName.String
	}
	if sector.Valid {
		stock.Sector = sector.String
	}

	ts, err := time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return stock, fmt.Errorf("invalid last_updated timestamp %q: %w", lastUpdated, err)
	}
	stock.LastUpdated = ts

	return stock, nil
}
