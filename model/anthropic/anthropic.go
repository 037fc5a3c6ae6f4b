// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/model"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

// NewModel creates a new Anthropic model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{client: &client, opts: opts}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Chat sends the message sequence to the Anthropic Messages API and
// normalizes the content blocks into a model.Response.
func (m *Model) Chat(ctx context.Context, req model.Request) (*model.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}

	if systemBlocks := extractSystemMessage(req.Messages); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	out := &model.Response{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Content += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := map[string]any{}
			if toolBlock.Input != nil {
				if raw, err := json.Marshal(toolBlock.Input); err == nil {
					if err := json.Unmarshal(raw, &args); err != nil {
						args = map[string]any{}
					}
				}
			}
			out.ToolCalls = append(out.ToolCalls, core.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}
	return out, nil
}

// buildMessages converts normalized messages to the Anthropic message format.
// System messages are handled separately; tool results are embedded as
// tool_result blocks in user messages, as the Messages API requires.
func buildMessages(messages []core.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, msg := range messages {
		switch msg.Role {
		case core.RoleSystem:
			continue
		case core.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case core.RoleAssistant:
			var content []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				content = append(content, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				content = append(content, anthropic.NewToolUseBlock(call.ID, call.Arguments, call.Name))
			}
			if len(content) > 0 {
				out = append(out, anthropic.NewAssistantMessage(content...))
			}
		case core.RoleTool:
			out = append(out, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false),
			))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return out
}

// extractSystemMessage collects system message text blocks.
func extractSystemMessage(messages []core.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, msg := range messages {
		if msg.Role == core.RoleSystem && msg.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}
	return blocks
}

// buildTools converts tool specs to the Anthropic tool format.
func buildTools(specs []core.ToolSpec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, len(specs))
	for i, spec := range specs {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if spec.Parameters != nil {
			if properties, exists := spec.Parameters["properties"]; exists {
				inputSchema.Properties = properties
			}
			switch required := spec.Parameters["required"].(type) {
			case []string:
				inputSchema.Required = required
			case []any:
				for _, r := range required {
					if s, ok := r.(string); ok {
						inputSchema.Required = append(inputSchema.Required, s)
					}
				}
			}
		}
		out[i] = anthropic.ToolUnionParamOfTool(inputSchema, spec.Name)
	}
	return out
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          string(m.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
