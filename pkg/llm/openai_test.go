package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"stockadvisor/pkg/tools"
)

type recordingTool struct {
	name    string
	result  string
	err     error
	queries []string
}

func (r *recordingTool) Name() string        { return r.name }
func (r *recordingTool) Description() string { return "test tool" }

func (r *recordingTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}
}

func (r *recordingTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
	}
	json.Unmarshal(args, &params)
	r.queries = append(r.queries, params.Query)
	return r.result, r.err
}

func toolCallResponse(query string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "tool_calls",
				"message": map[string]interface{}{
					"role": "assistant",
					"tool_calls": []map[string]interface{}{
						{
							"id":   "call_" + query,
							"type": "function",
							"function": map[string]interface{}{
								"name":      "web_search",
								"arguments": `{"query":"` + query + `"}`,
							},
						},
					},
				},
			},
		},
	}
}

func textResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func newTestOpenAIClient(t *testing.T, responses []map[string]interface{}) *OpenAIClient {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := responses[calls]
		if calls < len(responses)-1 {
			calls++
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	client := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
	)
	return &OpenAIClient{
		client:       &client,
		model:        openai.ChatModelGPT4o,
		modelName:    "gpt-4o",
		timeout:      time.Minute,
		maxToolTurns: maxToolTurns,
	}
}

func TestGenerateAnalysis_ToolLoop(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		toolCallResponse("TSLA stock news"),
		toolCallResponse("Tesla earnings"),
		textResponse("**Overall Analysis**:\nAll clear."),
	})

	search := &recordingTool{name: "web_search", result: "some results"}

	text, err := client.GenerateAnalysis(context.Background(), "TSLA", "Tesla, Inc.", []tools.Tool{search})

	assert.Equal(t, nil, err)
	assert.Equal(t, "**Overall Analysis**:\nAll clear.", text)
	assert.Equal(t, 2, len(search.queries))
	assert.Equal(t, "TSLA stock news", search.queries[0])
	assert.Equal(t, "Tesla earnings", search.queries[1])
}

func TestGenerateAnalysis_ToolLoopExceeded(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		toolCallResponse("looping"),
	})
	client.maxToolTurns = 3

	search := &recordingTool{name: "web_search", result: "more results"}

	_, err := client.GenerateAnalysis(context.Background(), "TSLA", "Tesla, Inc.", []tools.Tool{search})

	assert.Equal(t, true, errors.Is(err, ErrToolLoopExceeded))
	assert.Equal(t, 3, len(search.queries))
}

func TestGenerateAnalysis_FailingToolDegradesToEmpty(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		toolCallResponse("TSLA"),
		textResponse("done"),
	})

	search := &recordingTool{name: "web_search", err: errors.New("search backend down")}

	text, err := client.GenerateAnalysis(context.Background(), "TSLA", "Tesla, Inc.", []tools.Tool{search})

	assert.Equal(t, nil, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 1, len(search.queries))
}

func TestGenerateAnalysis_NoTools(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		textResponse("plain analysis"),
	})

	text, err := client.GenerateAnalysis(context.Background(), "TSLA", "Tesla, Inc.", nil)

	assert.Equal(t, nil, err)
	assert.Equal(t, "plain analysis", text)
}

func TestResolveSymbol(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		textResponse("TSLA|Tesla, Inc."),
	})

	symbol, name, err := client.ResolveSymbol(context.Background(), "테슬라")

	assert.Equal(t, nil, err)
	assert.Equal(t, "TSLA", symbol)
	assert.Equal(t, "Tesla, Inc.", name)
}

func TestResolveSymbol_EmptyResponseEchoesInput(t *testing.T) {
	client := newTestOpenAIClient(t, []map[string]interface{}{
		textResponse(""),
	})

	symbol, name, err := client.ResolveSymbol(context.Background(), "mystery corp")

	assert.Equal(t, nil, err)
	assert.Equal(t, "mystery corp", symbol)
	assert.Equal(t, "mystery corp", name)
}
