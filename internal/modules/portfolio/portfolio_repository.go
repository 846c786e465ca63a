package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PortfolioRepository handles portfolio database operations
type PortfolioRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *sql.DB, log zerolog.Logger) *PortfolioRepository {
	return &PortfolioRepository{
		db:  db,
		log: log.With().Str("repo", "portfolio").Logger(),
	}
}

// Save persists a new portfolio and assigns its ID.
func (r *PortfolioRepository) Save(p *Portfolio) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreationDate.IsZero() {
		p.CreationDate = time.Now().UTC().Truncate(time.Second)
	}

	query := "INSERT INTO portfolios (id, name, description, creation_date) VALUES (?, ?, ?, ?)"

	_, err := r.db.Exec(query,
		p.ID,
		p.Name,
		p.Description,
		p.CreationDate.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}

	r.log.Info().Str("id", p.ID).Str("name", p.Name).Msg("Portfolio saved")
	return nil
}

// GetByID returns a portfolio without its positions, or nil if not found.
func (r *PortfolioRepository) GetByID(id string) (*Portfolio, error) {
	query := "SELECT id, name, description, creation_date FROM portfolios WHERE id = ?"

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err() // Portfolio not found
	}

	p, err := scanPortfolio(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan portfolio: %w", err)
	}

	return &p, nil
}

// GetAll returns all portfolios in summary form (no positions), ordered by
// creation date.
func (r *PortfolioRepository) GetAll() ([]Portfolio, error) {
	query := "SELECT id, name, description, creation_date FROM portfolios ORDER BY creation_date"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios: %w", err)
	}

	return portfolios, nil
}

// Delete removes a portfolio; its positions cascade at the schema level.
func (r *PortfolioRepository) Delete(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM portfolios WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if rowsAffected > 0 {
		r.log.Info().Str("id", id).Msg("Portfolio deleted")
	}
	return rowsAffected > 0, nil
}

func scanPortfolio(rows *sql.Rows) (Portfolio, error) {
	var p Portfolio
	var description sql.NullString
	var creationDate string

	if err := rows.Scan(&p.ID, &p.Name, &description, &creationDate); err != nil {
		return p, err
	}

	if description.Valid {
		p.Description = description.String
	}

	ts, err := time.Parse(time.RFC3339, creationDate)
	if err != nil {
		return p, fmt.Errorf("invalid creation_date timestamp %q: %w", creationDate, err)
	}
	p.CreationDate = ts

	return p, nil
}
