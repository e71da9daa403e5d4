package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"stockadvisor/pkg/tools"
)

// ErrToolLoopExceeded is returned when the model keeps requesting tools
// past the iteration cap.
var ErrToolLoopExceeded = errors.New("tool loop exceeded maximum iterations")

const (
	maxToolTurns      = 10
	generationTimeout = 3 * time.Minute
	resolveTimeout    = 30 * time.Second
)

// Generator produces symbol resolutions and analysis text. Implementations
// wrap a specific model provider.
type Generator interface {
	// ResolveSymbol maps a free-form company reference to a ticker symbol
	// and official company name. An unusable model response degrades to
	// echoing the input, not an error.
	ResolveSymbol(ctx context.Context, company string) (symbol, companyName string, err error)

	// GenerateAnalysis runs the analysis conversation, executing requested
	// tools until the model produces a final answer.
	GenerateAnalysis(ctx context.Context, symbol, company string, toolset []tools.Tool) (string, error)
}

// invokeTool dispatches a requested tool call by name. A failing or
// unknown tool degrades to an empty result so a flaky collaborator never
// aborts the turn.
func invokeTool(ctx context.Context, toolset []tools.Tool, name string, args json.RawMessage) string {
	for _, t := range toolset {
		if t.Name() != name {
			continue
		}
		out, err := t.Invoke(ctx, args)
		if err != nil {
			slog.Error("tool invocation failed", "tool", name, "error", err)
			return ""
		}
		return out
	}
	slog.Warn("model requested unknown tool", "tool", name)
	return ""
}
