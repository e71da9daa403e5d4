package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"stockadvisor/pkg/tools"
)

type AnthropicClient struct {
	client       *anthropic.Client
	model        anthropic.Model
	modelName    string
	timeout      time.Duration
	maxToolTurns int
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:       &client,
		model:        anthropic.Model("claude-sonnet-4-5"),
		modelName:    "claude-sonnet-4.5",
		timeout:      generationTimeout,
		maxToolTurns: maxToolTurns,
	}
}

func (c *AnthropicClient) ResolveSymbol(ctx context.Context, company string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 500,
		System: []anthropic.TextBlockParam{
			{Text: resolveSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(company)),
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("anthropic API error: %w", err)
	}

	content := strings.TrimSpace(textContent(resp))
	if content == "" {
		slog.Warn("empty symbol resolution, echoing input", "company", company)
		return company, company, nil
	}

	symbol, name := splitResolution(content, company)
	return symbol, name, nil
}

func (c *AnthropicClient) GenerateAnalysis(ctx context.Context, symbol, company string, toolset []tools.Tool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 5000,
		System: []anthropic.TextBlockParam{
			{Text: analysisSystemPrompt(toolset)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(analysisUserPrompt(symbol, company))),
		},
	}
	for _, t := range toolset {
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name(),
				Description: anthropic.String(t.Description()),
				InputSchema: toolInputSchema(t.Parameters()),
			},
		})
	}

	for turn := 0; turn < c.maxToolTurns; turn++ {
		resp, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("anthropic API error: %w", err)
		}

		if resp.StopReason != "tool_use" {
			return textContent(resp), nil
		}

		params.Messages = append(params.Messages, resp.ToParam())

		var results []anthropic.ContentBlockParamUnion
		for _, block := range resp.Content {
			tu, ok := block.AsAny().(anthropic.ToolUseBlock)
			if !ok {
				continue
			}
			slog.Info("tool call requested", "tool", tu.Name, "arguments", tu.JSON.Input.Raw())

			out := invokeTool(ctx, toolset, tu.Name, json.RawMessage(tu.JSON.Input.Raw()))
			results = append(results, anthropic.NewToolResultBlock(tu.ID, out, false))
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(results...))
	}

	return "", fmt.Errorf("anthropic analysis for %s: %w", symbol, ErrToolLoopExceeded)
}

func textContent(msg *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}

// toolInputSchema converts a JSON-schema shaped parameter map into the
// Messages API input schema.
func toolInputSchema(schema map[string]any) anthropic.ToolInputSchemaParam {
	out := anthropic.ToolInputSchemaParam{
		Properties: schema["properties"],
	}
	if required, ok := schema["required"].([]string); ok {
		out.Required = required
	}
	return out
}
