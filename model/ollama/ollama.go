// Package ollama implements model.Model against a locally hosted Ollama
// instance via its OpenAI-compatible chat completions endpoint. The same
// client works with vLLM, LiteLLM and other OpenAI-compatible servers.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/model"
)

// DefaultHost is the standard local Ollama address.
const DefaultHost = "http://localhost:11434"

// Options configures the Ollama model adapter.
type Options struct {
	Host       string
	Model      string
	HTTPClient *http.Client
}

// Model speaks the OpenAI-compatible wire format directly so no SDK
// dependency is needed for local serving.
type Model struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
}

// NewModel creates a client for a local Ollama instance.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Host:       DefaultHost,
		Model:      "llama3.1",
		HTTPClient: http.DefaultClient,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	return &Model{
		baseURL:    strings.TrimRight(opts.Host, "/") + "/v1",
		modelName:  opts.Model,
		httpClient: opts.HTTPClient,
	}
}

type wireMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content,omitempty"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type wireToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireCallFunc `json:"function"`
}

type wireCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type wireRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Tools    []wireTool    `json:"tools,omitempty"`
	Stream   bool          `json:"stream"`
}

type wireResponse struct {
	Choices []struct {
		Message      wireMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat sends a non-streaming chat completion request.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	body, err := json.Marshal(m.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	if wire.Error != nil {
		return nil, fmt.Errorf("ollama: %s: %s", wire.Error.Type, wire.Error.Message)
	}
	if len(wire.Choices) == 0 {
		return nil, fmt.Errorf("ollama: no choices returned")
	}

	msg := wire.Choices[0].Message
	out := &model.Response{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				args = map[string]any{}
			}
		}
		out.ToolCalls = append(out.ToolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return out, nil
}

func (m *Model) buildRequest(req model.Request) wireRequest {
	wire := wireRequest{Model: m.modelName}
	for _, msg := range req.Messages {
		wm := wireMessage{Role: msg.Role, Content: msg.Content, ToolCallID: msg.ToolCallID}
		for _, call := range msg.ToolCalls {
			args, err := json.Marshal(call.Arguments)
			if err != nil {
				args = []byte("{}")
			}
			wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
				ID:       call.ID,
				Type:     "function",
				Function: wireCallFunc{Name: call.Name, Arguments: string(args)},
			})
		}
		wire.Messages = append(wire.Messages, wm)
	}
	for _, spec := range req.Tools {
		wire.Tools = append(wire.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return wire
}

// Info returns metadata describing this Ollama model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.modelName,
		Provider:      "ollama",
		SupportsTools: true,
	}
}
