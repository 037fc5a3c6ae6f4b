package agent

import (
	"context"
	"fmt"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/logging"
	"github.com/modularai/agentcore/memory"
	"github.com/modularai/agentcore/model"
	"github.com/modularai/agentcore/rag"
	"github.com/modularai/agentcore/tool"
)

const (
	// DefaultMaxSteps bounds the reasoning loop when not configured.
	DefaultMaxSteps = 5
	// DefaultLongTermLimit is how many recent long-term records feed the context block.
	DefaultLongTermLimit = 5
	// DefaultTopK is how many retrieved passages feed the context block.
	DefaultTopK = 3

	// EmptyReply substitutes for a final model response with no content.
	EmptyReply = "I have no response at the moment."
	// FallbackReply is returned when the step ceiling is reached without a final answer.
	FallbackReply = "Sorry, I could not complete the response in time."
)

// Result is the outcome of one Chat invocation.
type Result struct {
	Reply string `json:"reply"`
	Steps int    `json:"steps"`
}

// Options configure an Agent.
type Options struct {
	// MaxSteps is the hard ceiling on model invocations per Chat call.
	MaxSteps int
	// LongTermLimit caps the long-term records merged into the context block.
	LongTermLimit int
	// TopK caps the retrieved passages merged into the context block.
	TopK int
	// RetrievalEnabled toggles the retrieval query. Retrieval is best effort
	// either way; disabling it just skips the call.
	RetrievalEnabled bool
	// Logger receives loop progress and degradation events.
	Logger logging.Logger
}

// Agent orchestrates memory, retrieval, the tool registry and the model
// gateway into a bounded multi-step reasoning cycle per user message.
//
// Concurrent Chat calls for different users are independent. Calls for the
// same user are not serialized here; interleaved short-term appends can
// occur if callers allow them. Serialize per user upstream (the HTTP layer
// does) when strict turn ordering matters.
type Agent struct {
	model     model.Model
	registry  *tool.Registry
	memory    *memory.Service
	retriever *rag.Retriever
	opts      Options
}

// New wires an Agent from its collaborators. The retriever may be nil, which
// disables retrieval regardless of Options.RetrievalEnabled.
func New(
	m model.Model,
	registry *tool.Registry,
	memorySvc *memory.Service,
	retriever *rag.Retriever,
	optFns ...func(o *Options),
) *Agent {
	opts := Options{
		MaxSteps:         DefaultMaxSteps,
		LongTermLimit:    DefaultLongTermLimit,
		TopK:             DefaultTopK,
		RetrievalEnabled: true,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	return &Agent{
		model:     m,
		registry:  registry,
		memory:    memorySvc,
		retriever: retriever,
		opts:      opts,
	}
}

// Chat runs the bounded reasoning loop for one user message and returns the
// final reply with the number of model invocations taken.
//
// Failure semantics: retrieval faults degrade to an empty context and never
// surface; model gateway faults and durable-store faults abort the call with
// an error. Tool faults become ordinary tool messages inside the loop.
func (a *Agent) Chat(ctx context.Context, userID, message string) (*Result, error) {
	logger := a.opts.Logger
	logger.Info("agent.chat.start", "user_id", userID)

	a.memory.AddShortTerm(userID, core.RoleUser, message)

	longTerm, err := a.memory.GetLongTerm(ctx, userID, a.opts.LongTermLimit)
	if err != nil {
		return nil, fmt.Errorf("agent: load long-term memory: %w", err)
	}
	shortTerm := a.memory.GetShortTerm(userID)
	passages := a.retrieve(ctx, message)

	messages := a.buildMessages(message, shortTerm, longTerm, passages)
	specs := a.registry.Specs()

	steps := 0
	for steps < a.opts.MaxSteps {
		steps++
		logger.Debug("agent.step", "step", steps)

		resp, err := a.model.Chat(ctx, model.Request{Messages: messages, Tools: specs})
		if err != nil {
			return nil, fmt.Errorf("agent: model gateway: %w", err)
		}

		if resp.HasToolCalls() {
			logger.Info("agent.tool_calls", "count", len(resp.ToolCalls), "step", steps)
			messages = append(messages, core.Message{
				Role:      core.RoleAssistant,
				ToolCalls: resp.ToolCalls,
			})
			for _, call := range resp.ToolCalls {
				result := a.registry.Run(ctx, call.Name, call.Arguments)
				messages = append(messages, core.Message{
					Role:       core.RoleTool,
					ToolCallID: call.ID,
					Content:    result,
				})
			}
			continue
		}

		final := resp.Content
		if final == "" {
			final = EmptyReply
		}
		a.memory.AddShortTerm(userID, core.RoleAssistant, final)
		if err := a.memory.AddLongTerm(ctx, userID, message); err != nil {
			return nil, fmt.Errorf("agent: persist user message: %w", err)
		}
		if err := a.memory.AddLongTerm(ctx, userID, final); err != nil {
			return nil, fmt.Errorf("agent: persist reply: %w", err)
		}
		logger.Info("agent.chat.done", "user_id", userID, "steps", steps)
		return &Result{Reply: final, Steps: steps}, nil
	}

	logger.Warn("agent.chat.step_ceiling", "user_id", userID, "steps", steps)
	return &Result{Reply: FallbackReply, Steps: steps}, nil
}

// retrieve queries the retrieval index, downgrading any failure to an empty
// result. The error is matched here, logged and dropped: retrieval is best
// effort and must never block or abort the loop.
func (a *Agent) retrieve(ctx context.Context, message string) []string {
	if !a.opts.RetrievalEnabled || a.retriever == nil {
		return nil
	}
	passages, err := a.retriever.Search(ctx, message, a.opts.TopK)
	if err != nil {
		a.opts.Logger.Warn("agent.retrieval.unavailable", "error", err.Error())
		return nil
	}
	return passages
}

// buildMessages assembles the sequence sent to the gateway: the three fixed
// directives, the synthesized context block, the short-term history minus the
// just-added current turn, then the current user turn exactly once.
func (a *Agent) buildMessages(message string, shortTerm []core.Message, longTerm, passages []string) []core.Message {
	history := shortTerm
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	messages := make([]core.Message, 0, len(history)+5)
	messages = append(messages,
		core.Message{Role: core.RoleSystem, Content: SystemPrompt},
		core.Message{Role: core.RoleSystem, Content: ReasoningPrompt},
		core.Message{Role: core.RoleSystem, Content: ToolsPrompt},
		core.Message{Role: core.RoleSystem, Content: buildSystemContext(longTerm, passages)},
	)
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: message})
	return messages
}
