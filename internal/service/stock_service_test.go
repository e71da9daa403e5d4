package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"stockadvisor/internal/model"
	"stockadvisor/pkg/tools"
)

type fakeStore struct {
	mappings map[string]*model.SymbolMapping
	cached   *model.StockAnalysis
	saved    []*model.StockAnalysis

	mappingErr error
	lookupErr  error
	saveErr    error

	savedMappings map[string][2]string
	lookupCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mappings:      map[string]*model.SymbolMapping{},
		savedMappings: map[string][2]string{},
	}
}

func (f *fakeStore) GetSymbolMapping(inputQuery string) (*model.SymbolMapping, error) {
	if f.mappingErr != nil {
		return nil, f.mappingErr
	}
	return f.mappings[inputQuery], nil
}

func (f *fakeStore) SaveSymbolMapping(inputQuery, symbol, companyName string) error {
	f.savedMappings[inputQuery] = [2]string{symbol, companyName}
	return nil
}

func (f *fakeStore) GetCachedAnalysis(symbol string, maxAge time.Duration) (*model.StockAnalysis, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.cached, nil
}

func (f *fakeStore) SaveAnalysis(a *model.StockAnalysis) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, a)
	return nil
}

type fakeGenerator struct {
	symbol       string
	companyName  string
	analysisText string
	resolveErr   error
	generateErr  error

	resolveCalls  int
	generateCalls int
}

func (f *fakeGenerator) ResolveSymbol(ctx context.Context, company string) (string, string, error) {
	f.resolveCalls++
	if f.resolveErr != nil {
		return "", "", f.resolveErr
	}
	return f.symbol, f.companyName, nil
}

func (f *fakeGenerator) GenerateAnalysis(ctx context.Context, symbol, company string, toolset []tools.Tool) (string, error) {
	f.generateCalls++
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.analysisText, nil
}

const fakeAnalysisText = `**Short-Term Recommendation (1 day-1 week)**: BUY
**Short-Term Reasons**:
- Momentum

**Mid-Term Recommendation (1 week-3 months)**: HOLD
**Mid-Term Reasons**:
- Mixed signals

**Long-Term Recommendation (3 months-1 year)**: SELL
**Long-Term Reasons**:
- Competition

**Overall Analysis**:
Summary text.`

func newTestService(store *fakeStore, gen *fakeGenerator, cacheEnabled bool) *StockService {
	toolset := tools.NewToolSet(func() []tools.Tool { return nil })
	return NewStockService(store, gen, nil, toolset, 24*time.Hour, cacheEnabled)
}

func TestAnalyze_ResolvesAndCachesNewSymbol(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{symbol: "TSLA", companyName: "Tesla, Inc.", analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, true)

	res, err := svc.Analyze(context.Background(), "테슬라")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, gen.resolveCalls)
	assert.Equal(t, [2]string{"TSLA", "Tesla, Inc."}, store.savedMappings["테슬라"])
	assert.Equal(t, "TSLA", res.Analysis.Symbol)
	assert.Equal(t, "Tesla, Inc.", res.Analysis.CompanyName)
	assert.Equal(t, model.ActionBuy, res.Analysis.ShortTerm.Action)
	assert.Equal(t, model.ActionHold, res.Analysis.MidTerm.Action)
	assert.Equal(t, model.ActionSell, res.Analysis.LongTerm.Action)
	assert.Equal(t, "Summary text.", res.Analysis.Analysis)
	assert.Equal(t, 1, len(store.saved))
	assert.Equal(t, false, res.CacheHit)
}

func TestAnalyze_KnownMappingSkipsResolution(t *testing.T) {
	store := newFakeStore()
	store.mappings["TSLA"] = &model.SymbolMapping{
		InputQuery: "TSLA", Symbol: "TSLA", CompanyName: "Tesla, Inc.",
	}
	gen := &fakeGenerator{analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, true)

	res, err := svc.Analyze(context.Background(), "TSLA")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, gen.resolveCalls)
	assert.Equal(t, "TSLA", res.Analysis.Symbol)
}

func TestAnalyze_CacheHitShortCircuitsGeneration(t *testing.T) {
	store := newFakeStore()
	store.mappings["TSLA"] = &model.SymbolMapping{
		InputQuery: "TSLA", Symbol: "TSLA", CompanyName: "Tesla, Inc.",
	}
	store.cached = &model.StockAnalysis{
		Symbol:      "TSLA",
		CompanyName: "Tesla, Inc.",
		ShortTerm:   model.Recommendation{Action: model.ActionBuy, Reason: "cached"},
		MidTerm:     model.Recommendation{Action: model.ActionHold, Reason: "cached"},
		LongTerm:    model.Recommendation{Action: model.ActionHold, Reason: "cached"},
		Analysis:    "cached analysis",
		UpdatedAt:   time.Now().Add(-2 * time.Hour),
	}
	gen := &fakeGenerator{analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, true)

	res, err := svc.Analyze(context.Background(), "TSLA")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, gen.generateCalls)
	assert.Equal(t, true, res.CacheHit)
	assert.Equal(t, "cached analysis", res.Analysis.Analysis)
	assert.Equal(t, 0, len(store.saved))
}

func TestAnalyze_CachingDisabledSkipsLookup(t *testing.T) {
	store := newFakeStore()
	store.mappings["TSLA"] = &model.SymbolMapping{
		InputQuery: "TSLA", Symbol: "TSLA", CompanyName: "Tesla, Inc.",
	}
	store.cached = &model.StockAnalysis{Symbol: "TSLA"}
	gen := &fakeGenerator{analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, false)

	res, err := svc.Analyze(context.Background(), "TSLA")

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, store.lookupCalls)
	assert.Equal(t, 1, gen.generateCalls)
	assert.Equal(t, false, res.CacheHit)
}

func TestAnalyze_StorageReadErrorTreatedAsMiss(t *testing.T) {
	store := newFakeStore()
	store.mappingErr = errors.New("db down")
	store.lookupErr = errors.New("db down")
	gen := &fakeGenerator{symbol: "TSLA", companyName: "Tesla, Inc.", analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, true)

	res, err := svc.Analyze(context.Background(), "테슬라")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, gen.resolveCalls)
	assert.Equal(t, 1, gen.generateCalls)
	assert.Equal(t, "TSLA", res.Analysis.Symbol)
}

func TestAnalyze_CacheWriteFailureDoesNotFailRequest(t *testing.T) {
	store := newFakeStore()
	store.mappings["TSLA"] = &model.SymbolMapping{
		InputQuery: "TSLA", Symbol: "TSLA", CompanyName: "Tesla, Inc.",
	}
	store.saveErr = errors.New("disk full")
	gen := &fakeGenerator{analysisText: fakeAnalysisText}
	svc := newTestService(store, gen, true)

	res, err := svc.Analyze(context.Background(), "TSLA")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, res.CacheWriteFailed)
	assert.Equal(t, model.ActionBuy, res.Analysis.ShortTerm.Action)
}

func TestAnalyze_GenerationErrorSurfaces(t *testing.T) {
	store := newFakeStore()
	store.mappings["TSLA"] = &model.SymbolMapping{
		InputQuery: "TSLA", Symbol: "TSLA", CompanyName: "Tesla, Inc.",
	}
	gen := &fakeGenerator{generateErr: errors.New("provider unreachable")}
	svc := newTestService(store, gen, true)

	_, err := svc.Analyze(context.Background(), "TSLA")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(store.saved))
}

func TestAnalyze_EmptyInputRejected(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{}
	svc := newTestService(store, gen, true)

	_, err := svc.Analyze(context.Background(), "   ")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, gen.resolveCalls)
}
