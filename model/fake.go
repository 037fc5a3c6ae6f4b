package model

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/modularai/agentcore/core"
)

// ToolMarker is the prefix a user message must carry to force a tool call
// from the FakeModel: "USE_TOOL:<name> <json-arguments>".
const ToolMarker = "USE_TOOL:"

// FakeModel is a deterministic stand-in backend used for tests and offline
// development. Its behavior is fixed:
//
//   - If any tool message is present in the sequence, it acknowledges the
//     tool result with fixed content and no tool calls.
//   - If the latest user message contains the ToolMarker, it emits exactly
//     one tool call with the named tool and the parsed JSON arguments
//     (an empty argument map if the payload is missing or malformed).
//   - Otherwise it answers with a canned reply selected by keyword presence,
//     case-insensitively, in a fixed priority order.
type FakeModel struct{}

// NewFakeModel constructs the deterministic stand-in backend.
func NewFakeModel() *FakeModel { return &FakeModel{} }

// Chat implements Model.
func (m *FakeModel) Chat(_ context.Context, req Request) (*Response, error) {
	for _, msg := range req.Messages {
		if msg.Role == core.RoleTool {
			return &Response{Content: "Tool executed successfully."}, nil
		}
	}

	lastUser := lastUserMessage(req.Messages)
	if idx := strings.Index(lastUser, ToolMarker); idx >= 0 {
		name, args := parseToolMarker(lastUser[idx+len(ToolMarker):])
		return &Response{
			ToolCalls: []core.ToolCall{{
				ID:        "call_" + uuid.NewString(),
				Name:      name,
				Arguments: args,
			}},
		}, nil
	}

	return &Response{Content: cannedReply(lastUser)}, nil
}

// Info returns metadata describing the fake backend.
func (m *FakeModel) Info() Info {
	return Info{Name: "fake", Provider: "fake", SupportsTools: true}
}

func lastUserMessage(messages []core.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// parseToolMarker splits "name {json}" into the tool name and its arguments.
// Malformed or absent JSON yields an empty argument map, never an error.
func parseToolMarker(payload string) (string, map[string]any) {
	payload = strings.TrimSpace(payload)
	name := payload
	args := map[string]any{}
	if i := strings.IndexAny(payload, " \t"); i > 0 {
		name = payload[:i]
		raw := strings.TrimSpace(payload[i+1:])
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				args = map[string]any{}
			}
		}
	}
	return name, args
}

// cannedReply picks a reply by keyword group, checked in priority order.
func cannedReply(lastUser string) string {
	lower := strings.ToLower(lastUser)
	contains := func(tokens ...string) bool {
		for _, t := range tokens {
			if strings.Contains(lower, t) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("hello", "hi", "hey"):
		return "Hello! I can help with questions, retrieval, memory and automations."
	case contains("rag", "search", "document"):
		return "I can search the vector index and build an answer from the stored documents."
	case contains("memory", "remember"):
		return "I can save and retrieve per-user memories."
	case contains("tool"):
		return "I can use external tools to fetch data or run actions."
	default:
		return "Understood. I can summarize, answer and suggest next steps."
	}
}
