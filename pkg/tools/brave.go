package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

const defaultResultCount = 5

type BraveSearch struct {
	apiKey     string
	httpClient *http.Client
	endpoint   string
}

func NewBraveSearch(apiKey string) *BraveSearch {
	return &BraveSearch{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   braveEndpoint,
	}
}

func (b *BraveSearch) Name() string {
	return "web_search"
}

func (b *BraveSearch) Description() string {
	return "Search the web for current news, prices, filings and market commentary. Returns titles, URLs and snippets of the top results."
}

func (b *BraveSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"count": map[string]any{
				"type":        "integer",
				"description": "Number of results to return (max 20)",
			},
		},
		"required": []string{"query"},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (b *BraveSearch) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("brave search: invalid arguments: %w", err)
	}
	if params.Query == "" {
		return "", fmt.Errorf("brave search: empty query")
	}
	if params.Count <= 0 || params.Count > 20 {
		params.Count = defaultResultCount
	}

	reqURL := fmt.Sprintf("%s?q=%s&count=%s",
		b.endpoint,
		url.QueryEscape(params.Query),
		strconv.Itoa(params.Count),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("brave search: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("brave search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("brave search: unexpected status %d", resp.StatusCode)
	}

	var raw braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("brave search decode: %w", err)
	}

	if len(raw.Web.Results) == 0 {
		return "No results found for: " + params.Query, nil
	}

	var segments []string
	for _, r := range raw.Web.Results {
		segments = append(segments, fmt.Sprintf("%s\n%s\n%s", r.Title, r.URL, r.Description))
	}
	return strings.Join(segments, "\n"), nil
}
