package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticTool(name, reply string) *FunctionTool {
	return NewFunctionTool(name, "static reply",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (string, error) {
			return reply, nil
		},
	)
}

func TestRegistry_RunUnknownTool(t *testing.T) {
	r := NewRegistry()
	got := r.Run(context.Background(), "missing", map[string]any{})
	assert.Equal(t, `Tool "missing" not found.`, got)
}

func TestRegistry_RunFailedToolYieldsText(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool())

	// Missing required argument fails validation; Run turns it into text.
	got := r.Run(context.Background(), "echo", map[string]any{})
	assert.Contains(t, got, `Tool "echo" failed:`)
}

func TestRegistry_RunDispatchesByName(t *testing.T) {
	r := NewRegistry()
	r.Register(staticTool("alpha", "from alpha"))
	r.Register(staticTool("beta", "from beta"))

	assert.Equal(t, "from beta", r.Run(context.Background(), "beta", map[string]any{}))
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(staticTool("dup", "first"))
	r.Register(staticTool("other", "other"))
	r.Register(staticTool("dup", "second"))

	assert.Equal(t, "second", r.Run(context.Background(), "dup", map[string]any{}))

	// Replacement keeps the original position in the advertised catalog.
	specs := r.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "dup", specs[0].Name)
	assert.Equal(t, "other", specs[1].Name)
}

func TestRegistry_SpecsInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		r.Register(staticTool(name, name))
	}

	specs := r.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, "c", specs[0].Name)
	assert.Equal(t, "a", specs[1].Name)
	assert.Equal(t, "b", specs[2].Name)
}

func TestRegistry_SpecsEmpty(t *testing.T) {
	assert.Empty(t, NewRegistry().Specs())
}
