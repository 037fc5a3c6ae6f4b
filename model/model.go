package model

import (
	"context"

	"github.com/modularai/agentcore/core"
)

// Request captures the normalized model input produced by the agent loop.
type Request struct {
	Messages []core.Message  `json:"messages"`
	Tools    []core.ToolSpec `json:"tools,omitempty"`
}

// Response is the gateway's answer to a single Request. Content is the final
// natural-language text; ToolCalls, when non-empty, are the invocations the
// model wants executed before it can continue.
type Response struct {
	Content   string          `json:"content,omitempty"`
	ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
}

// HasToolCalls reports whether the response requests tool execution.
func (r *Response) HasToolCalls() bool { return len(r.ToolCalls) > 0 }

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "ollama", "fake"
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by the agent loop to drive generation.
// Implementations block until the provider answers; the loop imposes no
// per-call timeout beyond what the supplied context carries.
type Model interface {
	Chat(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}
