package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS stock_symbol_mapping (
	id BIGSERIAL PRIMARY KEY,
	input_query VARCHAR(200) NOT NULL UNIQUE,
	symbol VARCHAR(20) NOT NULL,
	company_name VARCHAR(200) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS stock_analysis_cache (
	id BIGSERIAL PRIMARY KEY,
	symbol VARCHAR(20) NOT NULL,
	company_name VARCHAR(200) NOT NULL,
	short_term_action VARCHAR(10) NOT NULL,
	short_term_reason TEXT NOT NULL,
	mid_term_action VARCHAR(10) NOT NULL,
	mid_term_reason TEXT NOT NULL,
	long_term_action VARCHAR(10) NOT NULL,
	long_term_reason TEXT NOT NULL,
	analysis TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_symbol_updated
	ON stock_analysis_cache (symbol, updated_at);
`

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// Migrate creates the cache tables and the (symbol, updated_at) index
// used by the freshness query.
func Migrate() error {
	_, err := DB.Exec(schema)
	return err
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
