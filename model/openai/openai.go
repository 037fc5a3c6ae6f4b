// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API (including function/tool calling). It adapts the
// normalized Request/Response structures into the SDK's message format and back.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/model"
)

// Options configure the OpenAI model adapter. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Chat sends the message sequence and tool catalog to the Chat Completions
// API and normalizes the first choice into a model.Response.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	params := m.buildParams(req)

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	msg := resp.Choices[0].Message
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

// buildParams assembles the OpenAI request parameters including tool definitions.
func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
	for i, spec := range req.Tools {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openai.String(spec.Description),
				Parameters:  spec.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// buildMessages converts normalized messages into OpenAI chat messages,
// preserving the assistant tool call / tool result correlation.
func buildMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case core.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case core.RoleAssistant:
			if len(msg.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(msg.Content))
				continue
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: extractToolCalls(msg.ToolCalls),
				},
			})
		case core.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			if msg.Content != "" {
				out = append(out, openai.UserMessage(msg.Content))
			}
		}
	}
	return out
}

// extractToolCalls converts normalized tool calls into OpenAI formatted tool calls.
func extractToolCalls(calls []core.ToolCall) []openai.ChatCompletionMessageToolCallParam {
	out := make([]openai.ChatCompletionMessageToolCallParam, 0, len(calls))
	for _, call := range calls {
		args, err := json.Marshal(call.Arguments)
		if err != nil {
			args = []byte("{}")
		}
		out = append(out, openai.ChatCompletionMessageToolCallParam{
			ID:   call.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.Name,
				Arguments: string(args),
			},
		})
	}
	return out
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
