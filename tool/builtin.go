package tool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modularai/agentcore/memory"
	"github.com/modularai/agentcore/rag"
)

// DefaultRetrieveLimit is the record count used when retrieve_memory is
// called without a limit argument.
const DefaultRetrieveLimit = 5

// NewVectorSearchTool exposes similarity search over the retrieval index.
func NewVectorSearchTool(retriever *rag.Retriever) *FunctionTool {
	return NewFunctionTool(
		"vector_search",
		"Semantic search over the document index.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string"},
				"k":     map[string]any{"type": "integer"},
			},
			"required": []string{"query"},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			query, _ := args["query"].(string)
			results, err := retriever.Search(ctx, query, intArg(args, "k", rag.DefaultTopK))
			if err != nil {
				return "", err
			}
			if len(results) == 0 {
				return "No results.", nil
			}
			return strings.Join(results, "\n"), nil
		},
	)
}

// NewSaveMemoryTool persists a long-term memory record for a user. Both
// user_id and content must be non-empty; anything else is a user-input
// problem reported as text.
func NewSaveMemoryTool(svc *memory.Service) *FunctionTool {
	return NewFunctionTool(
		"save_memory",
		"Save a long-term memory for a user.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{"type": "string"},
				"content": map[string]any{"type": "string"},
			},
			"required": []string{"user_id", "content"},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			userID, _ := args["user_id"].(string)
			content, _ := args["content"].(string)
			if userID == "" || content == "" {
				return "Invalid parameters: user_id and content must be non-empty.", nil
			}
			if err := svc.AddLongTerm(ctx, userID, content); err != nil {
				return "", err
			}
			return "Memory saved.", nil
		},
	)
}

// NewRetrieveMemoryTool fetches the most recent long-term records for a user.
func NewRetrieveMemoryTool(svc *memory.Service) *FunctionTool {
	return NewFunctionTool(
		"retrieve_memory",
		"Retrieve recent long-term memories for a user.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{"type": "string"},
				"limit":   map[string]any{"type": "integer"},
			},
			"required": []string{"user_id"},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			userID, _ := args["user_id"].(string)
			if userID == "" {
				return "Invalid parameters: user_id must be non-empty.", nil
			}
			memories, err := svc.GetLongTerm(ctx, userID, intArg(args, "limit", DefaultRetrieveLimit))
			if err != nil {
				return "", err
			}
			if len(memories) == 0 {
				return "No memories.", nil
			}
			return strings.Join(memories, "\n"), nil
		},
	)
}

// NewExternalAPIMockTool is a no-op diagnostic tool that echoes a fixed
// structured payload for any resource argument. Used to exercise the
// tool-calling plumbing end to end without external dependencies.
func NewExternalAPIMockTool() *FunctionTool {
	return NewFunctionTool(
		"external_api_mock",
		"Simulate an external API call.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"resource": map[string]any{"type": "string"},
			},
			"required": []string{"resource"},
		},
		func(_ context.Context, args map[string]any) (string, error) {
			resource, _ := args["resource"].(string)
			if resource == "" {
				resource = "default"
			}
			payload := map[string]any{
				"resource": resource,
				"status":   "ok",
				"data":     map[string]any{"value": 42},
			}
			data, err := json.Marshal(payload)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	)
}

// intArg reads an integer argument tolerating JSON's float64 decoding.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
