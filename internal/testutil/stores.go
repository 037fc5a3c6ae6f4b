package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/model"
)

// MemLongTerm is a volatile core.LongTermStore for tests. Records are kept
// per user in append order; Get returns newest first like the real backends.
type MemLongTerm struct {
	mu      sync.RWMutex
	records map[string][]string
}

// NewMemLongTerm constructs an empty in-memory store.
func NewMemLongTerm() *MemLongTerm {
	return &MemLongTerm{records: make(map[string][]string)}
}

// Add appends a record for the user.
func (s *MemLongTerm) Add(_ context.Context, userID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = append(s.records[userID], content)
	return nil
}

// Get returns up to limit records, newest first.
func (s *MemLongTerm) Get(_ context.Context, userID string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[userID]
	out := []string{}
	for i := len(recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, recs[i])
	}
	return out, nil
}

// ErrStore is the failure every FailingLongTerm operation returns.
var ErrStore = errors.New("store unavailable")

// FailingLongTerm fails every operation; used to test hard-fault propagation.
type FailingLongTerm struct{}

// Add always fails.
func (FailingLongTerm) Add(context.Context, string, string) error { return ErrStore }

// Get always fails.
func (FailingLongTerm) Get(context.Context, string, int) ([]string, error) { return nil, ErrStore }

// ErrEmbed is the failure every FailingEmbedder call returns.
var ErrEmbed = errors.New("embedding provider unavailable")

// FailingEmbedder fails every call; used to test retrieval degradation.
type FailingEmbedder struct{}

// Embed always fails.
func (FailingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, ErrEmbed
}

// ScriptedModel replays a fixed sequence of responses, then repeats the last
// one. It records every request it receives for assertions.
type ScriptedModel struct {
	mu        sync.Mutex
	responses []*model.Response
	calls     int
	Requests  []model.Request
}

// NewScriptedModel constructs a backend replaying the given responses.
func NewScriptedModel(responses ...*model.Response) *ScriptedModel {
	return &ScriptedModel{responses: responses}
}

// Chat implements model.Model.
func (m *ScriptedModel) Chat(_ context.Context, req model.Request) (*model.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	idx := m.calls
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.calls++
	if idx < 0 {
		return &model.Response{Content: "ok"}, nil
	}
	return m.responses[idx], nil
}

// Calls reports how many times Chat was invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Info implements model.Model.
func (m *ScriptedModel) Info() model.Info {
	return model.Info{Name: "scripted", Provider: "test", SupportsTools: true}
}

// ToolCallResponse builds a response requesting the given calls.
func ToolCallResponse(calls ...core.ToolCall) *model.Response {
	return &model.Response{ToolCalls: calls}
}

// ContentResponse builds a plain content response.
func ContentResponse(text string) *model.Response {
	return &model.Response{Content: text}
}
