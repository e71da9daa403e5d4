package tools

import (
	"fmt"
	"strings"
)

// Trusted sites for market research. Search guidance steers the model
// toward these rather than hard-filtering results.
var USStockSources = []string{
	"bloomberg.com",
	"reuters.com",
	"cnbc.com",
	"marketwatch.com",
	"yahoo.com/finance",
	"sec.gov",
	"investing.com",
	"fool.com",
	"seekingalpha.com",
}

var KRStockSources = []string{
	"naver.com/finance",
	"dart.fss.or.kr",
	"hankyung.com",
	"mk.co.kr",
	"sedaily.com",
	"news.einfomax.co.kr",
}

// SearchGuidance renders the trusted-source instruction appended to the
// analysis system prompt when web search is available.
func SearchGuidance() string {
	var sb strings.Builder
	sb.WriteString("When searching, prefer these trusted sources:\n\nUS stocks:\n")
	for _, site := range USStockSources {
		sb.WriteString(fmt.Sprintf("- site:%s\n", site))
	}
	sb.WriteString("\nKorean stocks:\n")
	for _, site := range KRStockSources {
		sb.WriteString(fmt.Sprintf("- site:%s\n", site))
	}
	sb.WriteString("\nExample queries:\n")
	sb.WriteString(`- "site:bloomberg.com TSLA stock news"` + "\n")
	sb.WriteString(`- "site:reuters.com Tesla earnings"` + "\n")
	return sb.String()
}

// FormatSiteQuery builds an OR-combined site-restricted query, e.g.
// "(site:bloomberg.com OR site:reuters.com) TSLA".
func FormatSiteQuery(sites []string, query string) string {
	filters := make([]string, len(sites))
	for i, site := range sites {
		filters[i] = "site:" + site
	}
	return fmt.Sprintf("(%s) %s", strings.Join(filters, " OR "), query)
}
