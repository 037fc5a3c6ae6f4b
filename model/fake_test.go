package model

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularai/agentcore/core"
)

var _ Model = (*FakeModel)(nil)

func userRequest(content string) Request {
	return Request{Messages: []core.Message{{Role: core.RoleUser, Content: content}}}
}

func TestFakeModel_ToolResultAcknowledgement(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Chat(context.Background(), Request{Messages: []core.Message{
		{Role: core.RoleUser, Content: "USE_TOOL:external_api_mock {\"resource\":\"x\"}"},
		{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{{ID: "call_1", Name: "external_api_mock"}}},
		{Role: core.RoleTool, Content: "{\"status\":\"ok\"}", ToolCallID: "call_1"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Tool executed successfully.", resp.Content)
	assert.False(t, resp.HasToolCalls())
}

func TestFakeModel_ToolMarker(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Chat(context.Background(), userRequest(`USE_TOOL:vector_search {"query":"cats","k":2}`))
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 1)
	call := resp.ToolCalls[0]
	assert.True(t, strings.HasPrefix(call.ID, "call_"))
	assert.Equal(t, "vector_search", call.Name)
	assert.Equal(t, map[string]any{"query": "cats", "k": 2.0}, call.Arguments)
}

func TestFakeModel_ToolMarkerWithoutArguments(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Chat(context.Background(), userRequest("USE_TOOL:external_api_mock"))
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "external_api_mock", resp.ToolCalls[0].Name)
	assert.Empty(t, resp.ToolCalls[0].Arguments)
}

func TestFakeModel_ToolMarkerMalformedJSON(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Chat(context.Background(), userRequest(`USE_TOOL:save_memory {not json`))
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "save_memory", resp.ToolCalls[0].Name)
	assert.Empty(t, resp.ToolCalls[0].Arguments)
}

func TestFakeModel_CannedReplies(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"greeting", "Hi there!", "Hello! I can help with questions, retrieval, memory and automations."},
		{"retrieval", "Can you search the documents?", "I can search the vector index and build an answer from the stored documents."},
		{"memory", "Please remember my birthday", "I can save and retrieve per-user memories."},
		{"tools", "What tools do you have?", "I can use external tools to fetch data or run actions."},
		{"generic", "Summarize the meeting notes", "Understood. I can summarize, answer and suggest next steps."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewFakeModel().Chat(context.Background(), userRequest(tt.message))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Content)
		})
	}
}

func TestFakeModel_GreetingBeatsSearchKeyword(t *testing.T) {
	resp, err := NewFakeModel().Chat(context.Background(), userRequest("Hello, can you search for something?"))
	require.NoError(t, err)
	assert.Equal(t, "Hello! I can help with questions, retrieval, memory and automations.", resp.Content)
}

func TestFakeModel_UsesLatestUserMessage(t *testing.T) {
	m := NewFakeModel()
	resp, err := m.Chat(context.Background(), Request{Messages: []core.Message{
		{Role: core.RoleSystem, Content: "directives"},
		{Role: core.RoleUser, Content: "hello"},
		{Role: core.RoleAssistant, Content: "Hello!"},
		{Role: core.RoleUser, Content: "now search documents"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "I can search the vector index and build an answer from the stored documents.", resp.Content)
}
