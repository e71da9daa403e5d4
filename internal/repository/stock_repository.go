package repository

import (
	"database/sql"
	"strings"
	"time"

	"stockadvisor/internal/model"
)

type StockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetSymbolMapping looks up a cached symbol resolution by the normalized
// input query. Returns nil when no mapping exists.
func (r *StockRepository) GetSymbolMapping(inputQuery string) (*model.SymbolMapping, error) {
	var m model.SymbolMapping
	err := r.db.QueryRow(`
		SELECT id, input_query, symbol, company_name, created_at, updated_at
		FROM stock_symbol_mapping
		WHERE input_query = $1
	`, strings.TrimSpace(inputQuery)).Scan(
		&m.ID, &m.InputQuery, &m.Symbol, &m.CompanyName, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSymbolMapping upserts the mapping for an input query, refreshing
// updated_at when the key already exists.
func (r *StockRepository) SaveSymbolMapping(inputQuery, symbol, companyName string) error {
	_, err := r.db.Exec(`
		INSERT INTO stock_symbol_mapping (input_query, symbol, company_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (input_query) DO UPDATE
		SET symbol = EXCLUDED.symbol,
		    company_name = EXCLUDED.company_name,
		    updated_at = NOW()
	`, strings.TrimSpace(inputQuery), symbol, companyName)
	return err
}

// GetCachedAnalysis returns the most recent analysis for symbol no older
// than maxAge, or nil when nothing fresh enough exists.
func (r *StockRepository) GetCachedAnalysis(symbol string, maxAge time.Duration) (*model.StockAnalysis, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	var a model.StockAnalysis
	err := r.db.QueryRow(`
		SELECT id, symbol, company_name,
		       short_term_action, short_term_reason,
		       mid_term_action, mid_term_reason,
		       long_term_action, long_term_reason,
		       analysis, created_at, updated_at
		FROM stock_analysis_cache
		WHERE symbol = $1 AND updated_at >= $2
		ORDER BY updated_at DESC
		LIMIT 1
	`, symbol, cutoff).Scan(
		&a.ID, &a.Symbol, &a.CompanyName,
		&a.ShortTerm.Action, &a.ShortTerm.Reason,
		&a.MidTerm.Action, &a.MidTerm.Reason,
		&a.LongTerm.Action, &a.LongTerm.Reason,
		&a.Analysis, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAnalysis appends a new analysis row. Existing rows are never mutated.
func (r *StockRepository) SaveAnalysis(a *model.StockAnalysis) error {
	return r.db.QueryRow(`
		INSERT INTO stock_analysis_cache (
			symbol, company_name,
			short_term_action, short_term_reason,
			mid_term_action, mid_term_reason,
			long_term_action, long_term_reason,
			analysis
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		a.Symbol, a.CompanyName,
		a.ShortTerm.Action, a.ShortTerm.Reason,
		a.MidTerm.Action, a.MidTerm.Reason,
		a.LongTerm.Action, a.LongTerm.Reason,
		a.Analysis,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// PurgeOlderThan bulk-deletes analysis rows older than age and reports how
// many were removed. Retention only; correctness never depends on it.
func (r *StockRepository) PurgeOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)

	res, err := r.db.Exec(`
		DELETE FROM stock_analysis_cache WHERE updated_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
