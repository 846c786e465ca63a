package portfolio

import "database/sql"

// Schema ensures the portfolios and positions tables exist.
// Positions cascade with their owning portfolio; stocks are shared and
// outlive positions, so they are only referenced.
const Schema = `
CREATE TABLE IF NOT EXISTS portfolios (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    creation_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
    id TEXT PRIMARY KEY,
    portfolio_id TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
    stock_id TEXT NOT NULL REFERENCES stocks(id),
    quantity REAL NOT NULL CHECK(quantity > 0),
    purchase_price REAL NOT NULL CHECK(purchase_price > 0),
    purchase_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_portfolio ON positions(portfolio_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
