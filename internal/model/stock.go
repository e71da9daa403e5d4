package model

import "time"

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Recommendation is an investment opinion for a single time horizon.
type Recommendation struct {
	Action string
	Reason string
}

// SymbolMapping caches the resolution of a free-form company reference
// (e.g. "테슬라", "tesla") to a ticker symbol. At most one row exists per
// normalized input query.
type SymbolMapping struct {
	ID          int64
	InputQuery  string
	Symbol      string
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockAnalysis is a full analysis result for a symbol. Rows are
// append-only; the freshest row within the staleness window wins.
type StockAnalysis struct {
	ID          int64
	Symbol      string
	CompanyName string
	ShortTerm   Recommendation
	MidTerm     Recommendation
	LongTerm    Recommendation
	Analysis    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
