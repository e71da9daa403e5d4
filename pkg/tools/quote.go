package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// StockQuote exposes real-time quote and company profile data to the model.
type StockQuote struct {
	client *finnhub.DefaultApiService
}

func NewStockQuote(apiKey string) *StockQuote {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &StockQuote{client: client}
}

func (q *StockQuote) Name() string {
	return "stock_quote"
}

func (q *StockQuote) Description() string {
	return "Get the current price, daily range and company profile for a stock ticker symbol."
}

func (q *StockQuote) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"symbol": map[string]any{
				"type":        "string",
				"description": "The stock ticker symbol, e.g. TSLA",
			},
		},
		"required": []string{"symbol"},
	}
}

func (q *StockQuote) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("stock quote: invalid arguments: %w", err)
	}
	if params.Symbol == "" {
		return "", fmt.Errorf("stock quote: empty symbol")
	}

	quote, _, err := q.client.Quote(ctx).Symbol(params.Symbol).Execute()
	if err != nil {
		return "", fmt.Errorf("stock quote for %s: %w", params.Symbol, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s quote:\n", params.Symbol))
	sb.WriteString(fmt.Sprintf("Current: %.2f (%.2f%% today)\n", quote.GetC(), quote.GetDp()))
	sb.WriteString(fmt.Sprintf("Open: %.2f High: %.2f Low: %.2f Previous close: %.2f\n",
		quote.GetO(), quote.GetH(), quote.GetL(), quote.GetPc()))

	// Profile is best-effort extra context.
	profile, _, err := q.client.CompanyProfile2(ctx).Symbol(params.Symbol).Execute()
	if err == nil && profile.GetName() != "" {
		sb.WriteString(fmt.Sprintf("Company: %s Industry: %s Market cap: %.0fM\n",
			profile.GetName(), profile.GetFinnhubIndustry(), profile.GetMarketCapitalization()))
	}

	return sb.String(), nil
}
