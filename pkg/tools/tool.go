package tools

import (
	"context"
	"encoding/json"
)

// Tool is an external capability the model may request mid-conversation.
// Parameters returns a JSON-schema shaped description of the arguments;
// Invoke takes the raw JSON arguments object and returns the tool's text
// output.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}
