package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"stockadvisor/pkg/tools"
)

type OpenAIClient struct {
	client       *openai.Client
	model        openai.ChatModel
	modelName    string
	timeout      time.Duration
	maxToolTurns int
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:       &client,
		model:        openai.ChatModelGPT4o,
		modelName:    "gpt-4o",
		timeout:      generationTimeout,
		maxToolTurns: maxToolTurns,
	}
}

func (c *OpenAIClient) ResolveSymbol(ctx context.Context, company string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(resolveSystemPrompt),
			openai.UserMessage(company),
		},
		MaxCompletionTokens: openai.Int(500),
	})
	if err != nil {
		return "", "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		slog.Warn("empty symbol resolution, echoing input", "company", company)
		return company, company, nil
	}

	symbol, name := splitResolution(resp.Choices[0].Message.Content, company)
	return symbol, name, nil
}

func (c *OpenAIClient) GenerateAnalysis(ctx context.Context, symbol, company string, toolset []tools.Tool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(analysisSystemPrompt(toolset)),
			openai.UserMessage(analysisUserPrompt(symbol, company)),
		},
		MaxCompletionTokens: openai.Int(5000),
	}
	for _, t := range toolset {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  openai.FunctionParameters(t.Parameters()),
			},
		})
	}

	for turn := 0; turn < c.maxToolTurns; turn++ {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("openai API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from openai")
		}

		choice := resp.Choices[0]
		if choice.FinishReason != "tool_calls" {
			return choice.Message.Content, nil
		}

		params.Messages = append(params.Messages, choice.Message.ToParam())
		for _, call := range choice.Message.ToolCalls {
			slog.Info("tool call requested",
				"tool", call.Function.Name, "arguments", call.Function.Arguments)

			result := invokeTool(ctx, toolset, call.Function.Name,
				json.RawMessage(call.Function.Arguments))
			params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))
		}
	}

	return "", fmt.Errorf("openai analysis for %s: %w", symbol, ErrToolLoopExceeded)
}
