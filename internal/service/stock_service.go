package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stockadvisor/internal/model"
	"stockadvisor/internal/repository"
	"stockadvisor/pkg/llm"
	"stockadvisor/pkg/tools"
)

// StockStore is the persistence surface the orchestrator depends on.
type StockStore interface {
	GetSymbolMapping(inputQuery string) (*model.SymbolMapping, error)
	SaveSymbolMapping(inputQuery, symbol, companyName string) error
	GetCachedAnalysis(symbol string, maxAge time.Duration) (*model.StockAnalysis, error)
	SaveAnalysis(a *model.StockAnalysis) error
}

// Result carries the analysis plus cache observability for the handler.
type Result struct {
	Analysis         *model.StockAnalysis
	CacheHit         bool
	CacheWriteFailed bool
}

// StockService sequences symbol resolution, cache lookup, generation,
// parsing and persistence for one request. It is stateless across
// requests; the tool set is shared process-wide.
type StockService struct {
	store        StockStore
	generator    llm.Generator
	hotCache     *repository.AnalysisCache
	toolset      *tools.ToolSet
	maxAge       time.Duration
	cacheEnabled bool
}

func NewStockService(store StockStore, generator llm.Generator, hotCache *repository.AnalysisCache, toolset *tools.ToolSet, maxAge time.Duration, cacheEnabled bool) *StockService {
	return &StockService{
		store:        store,
		generator:    generator,
		hotCache:     hotCache,
		toolset:      toolset,
		maxAge:       maxAge,
		cacheEnabled: cacheEnabled,
	}
}

// Analyze resolves the company reference, returns a fresh cached analysis
// when one exists, and otherwise generates, parses and persists a new one.
// Storage read failures degrade to cache misses; the post-generation write
// is best-effort because a successful analysis must reach the caller even
// when persistence is down.
func (s *StockService) Analyze(ctx context.Context, company string) (*Result, error) {
	key := strings.TrimSpace(company)
	if key == "" {
		return nil, fmt.Errorf("empty company reference")
	}

	symbol, companyName, err := s.resolveSymbol(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if cached := s.lookupCached(ctx, symbol); cached != nil {
			slog.Info("analysis cache hit", "symbol", symbol, "updated_at", cached.UpdatedAt)
			return &Result{Analysis: cached, CacheHit: true}, nil
		}
	}

	toolset := s.toolset.Init()

	text, err := s.generator.GenerateAnalysis(ctx, symbol, companyName, toolset)
	if err != nil {
		return nil, fmt.Errorf("generating analysis for %s: %w", symbol, err)
	}

	parsed := llm.ParseAnalysis(text)
	now := time.Now().UTC()
	analysis := &model.StockAnalysis{
		Symbol:      symbol,
		CompanyName: companyName,
		ShortTerm:   model.Recommendation(parsed.ShortTerm),
		MidTerm:     model.Recommendation(parsed.MidTerm),
		LongTerm:    model.Recommendation(parsed.LongTerm),
		Analysis:    parsed.Summary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result := &Result{Analysis: analysis}
	if err := s.store.SaveAnalysis(analysis); err != nil {
		// Generation succeeded, so the result is still returned; the
		// handler surfaces the failed write in a response header.
		slog.Warn("failed to cache analysis", "symbol", symbol, "error", err)
		result.CacheWriteFailed = true
	} else if err := s.hotCache.SetAnalysis(ctx, analysis, s.maxAge); err != nil {
		slog.Warn("failed to warm hot cache", "symbol", symbol, "error", err)
	}

	return result, nil
}

func (s *StockService) resolveSymbol(ctx context.Context, key string) (string, string, error) {
	mapping, err := s.store.GetSymbolMapping(key)
	if err != nil {
		slog.Warn("symbol mapping lookup failed, treating as miss", "query", key, "error", err)
	}
	if mapping != nil {
		return mapping.Symbol, mapping.CompanyName, nil
	}

	symbol, companyName, err := s.generator.ResolveSymbol(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("resolving symbol for %q: %w", key, err)
	}
	slog.Info("resolved symbol", "query", key, "symbol", symbol, "company", companyName)

	if err := s.store.SaveSymbolMapping(key, symbol, companyName); err != nil {
		slog.Warn("failed to cache symbol mapping", "query", key, "error", err)
	}

	return symbol, companyName, nil
}

// lookupCached consults the Redis hot cache first, then the analysis
// table. Any storage error is a miss.
func (s *StockService) lookupCached(ctx context.Context, symbol string) *model.StockAnalysis {
	if cached, ok := s.hotCache.GetAnalysis(ctx, symbol); ok {
		return cached
	}

	cached, err := s.store.GetCachedAnalysis(symbol, s.maxAge)
	if err != nil {
		slog.Warn("analysis cache lookup failed, treating as miss", "symbol", symbol, "error", err)
		return nil
	}
	return cached
}
