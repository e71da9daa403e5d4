package llm

import (
	"fmt"
	"strings"

	"stockadvisor/pkg/tools"
)

const resolveSystemPrompt = `You are a stock symbol expert. Convert the company name or symbol the user provides into the exact stock ticker symbol and official company name.

Respond with exactly one line in the format SYMBOL|Company Name, for example:
- "테슬라" → "TSLA|Tesla, Inc."
- "엔비디아" → "NVDA|NVIDIA Corporation"
- "apple" → "AAPL|Apple Inc."
- "삼성전자" → "005930.KS|Samsung Electronics Co., Ltd."
- "SK하이닉스" → "000660.KS|SK hynix Inc."

Answer with only the symbol and company name, no explanation.`

const analysisFormat = `After your analysis, respond in exactly this format:

**Short-Term Recommendation (1 day-1 week)**: [one of BUY/SELL/HOLD]
**Short-Term Reasons**:
- [reason 1]
- [reason 2]
- [reason 3]

**Mid-Term Recommendation (1 week-3 months)**: [one of BUY/SELL/HOLD]
**Mid-Term Reasons**:
- [reason 1]
- [reason 2]
- [reason 3]

**Long-Term Recommendation (3 months-1 year)**: [one of BUY/SELL/HOLD]
**Long-Term Reasons**:
- [reason 1]
- [reason 2]
- [reason 3]

**Overall Analysis**:
[detailed analysis]`

const analysisIntro = `You are a professional stock investment analyst. For the stock the user provides, give separate investment opinions for the short, mid and long term.

Analyze thoroughly:
1. Price and volume trends across timeframes (1 year, 6 months, 3 months, 1 month, 1 week)
2. Recent news and regulatory filings
3. Economic and political factors
4. Company earnings and financial health
5. Industry outlook and competitive landscape`

const analysisSearchHint = `Use the web_search tool to look up the latest price action, news, filings and macro issues, and the stock_quote tool for the current quote, before forming your opinion.`

// analysisSystemPrompt assembles the system prompt, adding tool usage and
// trusted-source guidance when search tools are wired in.
func analysisSystemPrompt(toolset []tools.Tool) string {
	parts := []string{analysisIntro}
	if len(toolset) > 0 {
		parts = append(parts, analysisSearchHint, tools.SearchGuidance())
	}
	parts = append(parts, analysisFormat)
	return strings.Join(parts, "\n\n")
}

func analysisUserPrompt(symbol, company string) string {
	return fmt.Sprintf("Provide a comprehensive analysis and investment opinion for %s (%s).", symbol, company)
}

// splitResolution parses the constrained "SYMBOL|Company Name" resolution
// response. Missing pieces fall back to the raw input.
func splitResolution(content, fallback string) (string, string) {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, fallback
	}

	symbol, name, found := strings.Cut(line, "|")
	symbol = strings.TrimSpace(symbol)
	name = strings.TrimSpace(name)
	if symbol == "" {
		symbol = fallback
	}
	if !found || name == "" {
		name = fallback
	}
	return symbol, name
}
