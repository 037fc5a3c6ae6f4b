// Package tool implements the function / tool calling subsystem that lets the
// agent invoke structured capabilities (retrieval, memory writes, external
// calls) with schema validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/modularai/agentcore/core"
	"github.com/modularai/agentcore/internal/util"
)

// Tool defines the interface for extending the agent with callable capabilities.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions
//   - Define proper JSON schema for parameters
//   - Return user-input problems as descriptive text, not errors
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is provided to the model to help it decide when to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with arguments parsed from the model's tool
	// call. The returned string becomes the content of the tool message.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// Spec builds the advertised specification for a tool.
func Spec(t Tool) core.ToolSpec {
	return core.ToolSpec{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Parameters(),
	}
}
