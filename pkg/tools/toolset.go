package tools

import (
	"log/slog"
	"sync"
)

type State int

const (
	StateUninitialized State = iota
	StateReady
	StateClosed
)

// ToolSet owns the process-wide tool collaborators. Construction is cheap;
// the tools themselves are built lazily on first Init and reused for the
// life of the process.
type ToolSet struct {
	mu    sync.Mutex
	state State
	tools []Tool
	build func() []Tool
}

func NewToolSet(build func() []Tool) *ToolSet {
	return &ToolSet{build: build}
}

// Init builds the tools on first call and returns them. Further calls are
// no-ops returning the same set. A closed set stays empty.
func (ts *ToolSet) Init() []Tool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	switch ts.state {
	case StateClosed:
		return nil
	case StateUninitialized:
		ts.tools = ts.build()
		ts.state = StateReady
		for _, t := range ts.tools {
			slog.Info("tool registered", "tool", t.Name())
		}
	}
	return ts.tools
}

func (ts *ToolSet) State() State {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.state
}

func (ts *ToolSet) Close() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tools = nil
	ts.state = StateClosed
}
