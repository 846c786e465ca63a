package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PositionRepository handles position database operations
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

// Save persists a new position for a portfolio and assigns its ID.
func (r *PositionRepository) Save(portfolioID string, p *Position) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = time.Now().UTC().Truncate(time.Second)
	}

	query := `
		INSERT INTO positions (id, portfolio_id, stock_id, quantity, purchase_price, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		p.ID,
		portfolioID,
		p.Stock.ID,
		p.Quantity,
		p.PurchasePrice,
		p.PurchaseDate.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}

	r.log.Info().
		Str("id", p.ID).
		Str("portfolio_id", portfolioID).
		Str("symbol", p.Stock.Symbol).
		Float64("quantity", p.Quantity).
		Msg("Position saved")

	return nil
}

// GetByPortfolio returns the portfolio's positions with their stocks
// resolved, in insertion order.
func (r *PositionRepository) GetByPortfolio(portfolioID string) ([]Position, error) {
	query := `
		SELECT p.id, p.quantity, p.purchase_price, p.purchase_date,
		       s.id, s.symbol, s.company_name, s.sector, s.current_price, s.last_updated
		FROM positions p
		JOIN stocks s ON p.stock_id = s.id
		WHERE p.portfolio_id = ?
		ORDER BY p.rowid
	`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		pos, err := scanPositionWithStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetCount returns the number of positions in a portfolio.
func (r *PositionRepository) GetCount(portfolioID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM positions WHERE portfolio_id = ?", portfolioID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}

func scanPositionWithStock(rows *sql.Rows) (Position, error) {
	var pos Position
	var companyName, sector sql.NullString
	var purchaseDate, lastUpdated string

	err := rows.Scan(
		&pos.ID,
		&pos.Quantity,
		&pos.PurchasePrice,
		&purchaseDate,
		&pos.Stock.ID,
		&pos.Stock.Symbol,
		&companyName,
		&sector,
		&pos.Stock.CurrentPrice,
		&lastUpdated,
	)
	if err != nil {
		return pos, err
	}

	if companyName.Valid {
		pos.Stock.CompanyName = companyName.String
	}
	if sector.Valid {
		pos.Stock.Sector = sector.String
	}

	pd, err := time.Parse(time.RFC3339, purchaseDate)
	if err != nil {
		return pos, fmt.Errorf("invalid purchase_date timestamp %q: %w", purchaseDate, err)
	}
	pos.PurchaseDate = pd

	lu, err := time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return pos, fmt.Errorf("invalid last_updated timestamp %q: %w", lastUpdated, err)
	}
	pos.Stock.LastUpdated = lu

	return pos, nil
}
