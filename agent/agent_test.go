package agent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modularai/agentcore/agent"
	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/internal/testutil"
	"github.com/modularai/agentcore/memory"
	"github.com/modularai/agentcore/model"
	"github.com/modularai/agentcore/rag"
	"github.com/modularai/agentcore/tool"
)

type fixture struct {
	agent    *agent.Agent
	memory   *memory.Service
	registry *tool.Registry
}

func newFixture(m model.Model, optFns ...func(o *agent.Options)) *fixture {
	svc := memory.NewService(memory.NewShortTerm(0), testutil.NewMemLongTerm())
	retriever := rag.NewRetriever(rag.NewIndex(), rag.NewHashEmbedder(64))
	registry := tool.NewRegistry()
	registry.Register(tool.NewSaveMemoryTool(svc))
	registry.Register(tool.NewRetrieveMemoryTool(svc))
	registry.Register(tool.NewVectorSearchTool(retriever))
	registry.Register(tool.NewExternalAPIMockTool())
	return &fixture{
		agent:    agent.New(m, registry, svc, retriever, optFns...),
		memory:   svc,
		registry: registry,
	}
}

func TestAgent_DirectAnswer(t *testing.T) {
	m := testutil.NewScriptedModel(testutil.ContentResponse("The answer is 4."))
	f := newFixture(m)

	res, err := f.agent.Chat(context.Background(), "u1", "What is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, "The answer is 4.", res.Reply)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, 1, m.Calls())
}

func TestAgent_StepCeiling(t *testing.T) {
	// A backend that requests a tool on every step never produces a final
	// answer, so the loop must stop at the ceiling with the fallback reply.
	m := testutil.NewScriptedModel(testutil.ToolCallResponse(
		core.ToolCall{ID: "call_1", Name: "external_api_mock", Arguments: map[string]any{"resource": "x"}},
	))
	f := newFixture(m, func(o *agent.Options) { o.MaxSteps = 3 })

	res, err := f.agent.Chat(context.Background(), "u1", "loop forever")
	require.NoError(t, err)
	assert.Equal(t, agent.FallbackReply, res.Reply)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, 3, m.Calls())
}

func TestAgent_ToolCallCorrelation(t *testing.T) {
	m := testutil.NewScriptedModel(
		testutil.ToolCallResponse(
			core.ToolCall{ID: "call_a", Name: "external_api_mock", Arguments: map[string]any{"resource": "one"}},
			core.ToolCall{ID: "call_b", Name: "external_api_mock", Arguments: map[string]any{"resource": "two"}},
		),
		testutil.ContentResponse("done"),
	)
	f := newFixture(m)

	res, err := f.agent.Chat(context.Background(), "u1", "run both")
	require.NoError(t, err)
	assert.Equal(t, "done", res.Reply)
	assert.Equal(t, 2, res.Steps)

	// The second request must carry the assistant tool-call turn followed by
	// one tool message per call, correlated by ID, in call order.
	require.Len(t, m.Requests, 2)
	msgs := m.Requests[1].Messages
	require.GreaterOrEqual(t, len(msgs), 3)

	assistant := msgs[len(msgs)-3]
	assert.Equal(t, core.RoleAssistant, assistant.Role)
	require.Len(t, assistant.ToolCalls, 2)

	first, second := msgs[len(msgs)-2], msgs[len(msgs)-1]
	assert.Equal(t, core.RoleTool, first.Role)
	assert.Equal(t, "call_a", first.ToolCallID)
	assert.Contains(t, first.Content, `"resource":"one"`)
	assert.Equal(t, core.RoleTool, second.Role)
	assert.Equal(t, "call_b", second.ToolCallID)
	assert.Contains(t, second.Content, `"resource":"two"`)
}

func TestAgent_UnknownToolBecomesToolMessage(t *testing.T) {
	m := testutil.NewScriptedModel(
		testutil.ToolCallResponse(core.ToolCall{ID: "call_x", Name: "no_such_tool"}),
		testutil.ContentResponse("recovered"),
	)
	f := newFixture(m)

	res, err := f.agent.Chat(context.Background(), "u1", "use a bad tool")
	require.NoError(t, err)
	assert.Equal(t, "recovered", res.Reply)

	msgs := m.Requests[1].Messages
	last := msgs[len(msgs)-1]
	assert.Equal(t, core.RoleTool, last.Role)
	assert.Equal(t, `Tool "no_such_tool" not found.`, last.Content)
}

func TestAgent_EmptyFinalContent(t *testing.T) {
	m := testutil.NewScriptedModel(testutil.ContentResponse(""))
	f := newFixture(m)

	res, err := f.agent.Chat(context.Background(), "u1", "say nothing")
	require.NoError(t, err)
	assert.Equal(t, agent.EmptyReply, res.Reply)
}

func TestAgent_PersistsTurnPair(t *testing.T) {
	m := testutil.NewScriptedModel(testutil.ContentResponse("noted"))
	f := newFixture(m)
	ctx := context.Background()

	_, err := f.agent.Chat(ctx, "u1", "I like jazz")
	require.NoError(t, err)

	// User message persisted before the reply, so newest-first yields
	// reply then message.
	longTerm, err := f.memory.GetLongTerm(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"noted", "I like jazz"}, longTerm)

	shortTerm := f.memory.GetShortTerm("u1")
	require.Len(t, shortTerm, 2)
	assert.Equal(t, core.RoleUser, shortTerm[0].Role)
	assert.Equal(t, "I like jazz", shortTerm[0].Content)
	assert.Equal(t, core.RoleAssistant, shortTerm[1].Role)
	assert.Equal(t, "noted", shortTerm[1].Content)
}

func TestAgent_NothingPersistedOnStepCeiling(t *testing.T) {
	m := testutil.NewScriptedModel(testutil.ToolCallResponse(
		core.ToolCall{ID: "call_1", Name: "external_api_mock", Arguments: map[string]any{"resource": "x"}},
	))
	f := newFixture(m, func(o *agent.Options) { o.MaxSteps = 2 })
	ctx := context.Background()

	_, err := f.agent.Chat(ctx, "u1", "loop forever")
	require.NoError(t, err)

	longTerm, err := f.memory.GetLongTerm(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, longTerm)
}

func TestAgent_DurableStoreFaultAborts(t *testing.T) {
	svc := memory.NewService(memory.NewShortTerm(0), testutil.FailingLongTerm{})
	m := testutil.NewScriptedModel(testutil.ContentResponse("ok"))
	a := agent.New(m, tool.NewRegistry(), svc, nil)

	_, err := a.Chat(context.Background(), "u1", "hello")
	assert.ErrorIs(t, err, testutil.ErrStore)
}

func TestAgent_ModelFaultAborts(t *testing.T) {
	f := newFixture(failingModel{})

	_, err := f.agent.Chat(context.Background(), "u1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model gateway")
}

func TestAgent_RetrievalFaultDegrades(t *testing.T) {
	// An index with content plus a failing embedder makes Search fail; the
	// loop must still answer with an empty retrieval block.
	index := rag.NewIndex()
	require.NoError(t, index.Add(context.Background(), []string{"doc"}, [][]float32{{1}}))
	retriever := rag.NewRetriever(index, testutil.FailingEmbedder{})

	svc := memory.NewService(memory.NewShortTerm(0), testutil.NewMemLongTerm())
	m := testutil.NewScriptedModel(testutil.ContentResponse("still fine"))
	a := agent.New(m, tool.NewRegistry(), svc, retriever)

	res, err := a.Chat(context.Background(), "u1", "anything")
	require.NoError(t, err)
	assert.Equal(t, "still fine", res.Reply)

	contextBlock := m.Requests[0].Messages[3].Content
	assert.Contains(t, contextBlock, "Retrieval context:\n(none)")
}

func TestAgent_ContextAssembly(t *testing.T) {
	svc := memory.NewService(memory.NewShortTerm(0), testutil.NewMemLongTerm())
	retriever := rag.NewRetriever(rag.NewIndex(), rag.NewHashEmbedder(64))
	ctx := context.Background()
	require.NoError(t, svc.AddLongTerm(ctx, "u1", "user prefers short answers"))
	require.NoError(t, retriever.AddDocuments(ctx, []string{"jazz history overview", "gardening tips"}))

	m := testutil.NewScriptedModel(testutil.ContentResponse("ok"))
	a := agent.New(m, tool.NewRegistry(), svc, retriever, func(o *agent.Options) { o.TopK = 1 })

	// Seed prior turns; they must appear as history, oldest first.
	svc.AddShortTerm("u1", core.RoleUser, "earlier question")
	svc.AddShortTerm("u1", core.RoleAssistant, "earlier answer")

	_, err := a.Chat(ctx, "u1", "tell me about jazz")
	require.NoError(t, err)

	msgs := m.Requests[0].Messages
	require.Len(t, msgs, 7)

	for i := 0; i < 4; i++ {
		assert.Equal(t, core.RoleSystem, msgs[i].Role)
	}
	contextBlock := msgs[3].Content
	assert.Contains(t, contextBlock, "Long-term memory:\n- user prefers short answers")
	assert.Contains(t, contextBlock, "Retrieval context:\n- jazz history overview")
	assert.NotContains(t, contextBlock, "gardening")

	assert.Equal(t, "earlier question", msgs[4].Content)
	assert.Equal(t, "earlier answer", msgs[5].Content)

	// The current turn appears exactly once, as the final user message.
	assert.Equal(t, core.RoleUser, msgs[6].Role)
	assert.Equal(t, "tell me about jazz", msgs[6].Content)
	count := 0
	for _, msg := range msgs {
		if strings.Contains(msg.Content, "tell me about jazz") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAgent_RetrievalDisabled(t *testing.T) {
	svc := memory.NewService(memory.NewShortTerm(0), testutil.NewMemLongTerm())
	retriever := rag.NewRetriever(rag.NewIndex(), rag.NewHashEmbedder(64))
	ctx := context.Background()
	require.NoError(t, retriever.AddDocuments(ctx, []string{"indexed document"}))

	m := testutil.NewScriptedModel(testutil.ContentResponse("ok"))
	a := agent.New(m, tool.NewRegistry(), svc, retriever, func(o *agent.Options) { o.RetrievalEnabled = false })

	_, err := a.Chat(ctx, "u1", "indexed document")
	require.NoError(t, err)

	contextBlock := m.Requests[0].Messages[3].Content
	assert.Contains(t, contextBlock, "Retrieval context:\n(none)")
}

func TestAgent_FakeModelToolRoundTrip(t *testing.T) {
	f := newFixture(model.NewFakeModel())
	ctx := context.Background()
	require.NoError(t, f.memory.AddLongTerm(ctx, "u1", "enjoys hiking"))

	res, err := f.agent.Chat(ctx, "u1", `USE_TOOL:retrieve_memory {"user_id":"u1","limit":1}`)
	require.NoError(t, err)
	assert.Equal(t, "Tool executed successfully.", res.Reply)
	assert.Equal(t, 2, res.Steps)
}

// failingModel aborts every invocation.
type failingModel struct{}

func (failingModel) Chat(context.Context, model.Request) (*model.Response, error) {
	return nil, assert.AnError
}

func (failingModel) Info() model.Info {
	return model.Info{Name: "failing", Provider: "test"}
}
