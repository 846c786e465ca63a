package market

import "database/sql"

// StocksSchema ensures the stocks table exists.
const StocksSchema = `
CREATE TABLE IF NOT EXISTS stocks (
    id TEXT PRIMARY KEY,
    symbol TEXT UNIQUE NOT NULL,
    company_name TEXT NOT NULL DEFAULT '',
    sector TEXT NOT NULL DEFAULT '',
    current_price REAL NOT NULL CHECK(current_price >= 0),
    last_updated TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stocks_sector ON stocks(sector);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(StocksSchema)
	return err
}
