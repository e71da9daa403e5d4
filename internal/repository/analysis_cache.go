package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockadvisor/internal/model"
)

// AnalysisCache is an optional Redis hot cache in front of the Postgres
// analysis table. A nil cache (or a nil client) is always a miss.
type AnalysisCache struct {
	redis *redis.Client
}

func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{redis: client}
}

func analysisKey(symbol string) string {
	return fmt.Sprintf("stockadvisor:analysis:%s", symbol)
}

func (c *AnalysisCache) GetAnalysis(ctx context.Context, symbol string) (*model.StockAnalysis, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, analysisKey(symbol)).Bytes()
	if err != nil {
		return nil, false
	}

	var a model.StockAnalysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false
	}
	return &a, true
}

func (c *AnalysisCache) SetAnalysis(ctx context.Context, a *model.StockAnalysis, ttl time.Duration) error {
	if c == nil || c.redis == nil {
		return nil
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, analysisKey(a.Symbol), raw, ttl).Err()
}
