package tool

import (
	"context"
	"fmt"
	"sync"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/logging"
)

// Registry is the catalog of callable capabilities advertised to the model
// gateway and dispatched by name. Registration order is preserved in Specs
// so the advertised catalog is stable across calls.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	order  []string
	logger logging.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(optFns ...func(r *Registry)) *Registry {
	r := &Registry{
		tools:  make(map[string]Tool),
		logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// WithLogger sets the registry logger.
func WithLogger(logger logging.Logger) func(r *Registry) {
	return func(r *Registry) { r.logger = logger }
}

// Register adds the tool under its declared name. Registering a second tool
// with the same name replaces the first: last registration wins.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Run looks up the tool and executes it. It never returns an error: unknown
// tools and failed executions yield descriptive text, so the agent loop
// always has a well-formed tool message to append.
func (r *Registry) Run(ctx context.Context, name string, args map[string]any) string {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		r.logger.Warn("tool.run.unknown", "tool", name)
		return fmt.Sprintf("Tool %q not found.", name)
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		r.logger.Warn("tool.run.failed", "tool", name, "error", err.Error())
		return fmt.Sprintf("Tool %q failed: %s", name, err.Error())
	}
	r.logger.Debug("tool.run.ok", "tool", name)
	return result
}

// Specs exposes all registered tools' specifications, in registration order,
// for advertisement to the model gateway.
func (r *Registry) Specs() []core.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Spec(r.tools[name]))
	}
	return out
}
