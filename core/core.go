package core

import (
	"context"
	"time"
)

// Message roles. Ordering of messages within a conversation is significant
// and must be preserved exactly as produced.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a structured request, emitted by a model, to execute a named
// capability with arguments. The ID round-trips unchanged into the resulting
// tool message so request and response can be correlated.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Message is one entry in the sequence exchanged with a language model.
//
// Content is empty (and meaningless) on an assistant message that carries
// tool calls; ToolCallID is set only on tool messages and must match the ID
// of exactly one prior tool call in the same sequence.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolSpec declaratively describes a callable capability to a model.
// Parameters is a JSON Schema object (minimal subset expected). Immutable
// once registered.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// MemoryRecord is a durable long-term memory entry. Records are append-only;
// the core never mutates or deletes them.
type MemoryRecord struct {
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LongTermStore is the durable per-user append-only memory capability.
// Implementations must survive process restarts, support concurrent
// appends/reads across users, and never swallow storage faults.
type LongTermStore interface {
	// Add durably appends a timestamped record for the user.
	Add(ctx context.Context, userID, content string) error

	// Get returns up to limit most-recent record contents for the user,
	// most-recent first. Unknown users yield an empty slice, not an error.
	Get(ctx context.Context, userID string, limit int) ([]string, error)
}

// VectorIndex stores documents together with their embeddings and answers
// nearest-neighbour queries. Append-only from the core's perspective.
type VectorIndex interface {
	// Add appends document/embedding pairs. Lengths must match.
	Add(ctx context.Context, documents []string, embeddings [][]float32) error

	// Search returns up to k documents ranked descending by cosine
	// similarity to the query embedding. Empty index yields an empty slice.
	Search(ctx context.Context, embedding []float32, k int) ([]string, error)

	// Count reports the number of stored documents.
	Count(ctx context.Context) (int, error)
}

// Embedder maps a batch of texts to equal-length numeric vectors. The
// retrieval subsystem assumes nothing about a provider beyond this contract.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
