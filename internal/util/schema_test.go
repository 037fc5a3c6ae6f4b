package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	type args struct {
		Query   string  `json:"query" description:"Search query"`
		Limit   int     `json:"limit,omitempty"`
		Score   float64 `json:"score,omitempty"`
		hidden  string
		Skipped string  `json:"-"`
	}
	_ = args{hidden: ""}

	schema := CreateSchema(args{})
	assert.Equal(t, "object", schema["type"])

	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "query")
	assert.Contains(t, props, "limit")
	assert.NotContains(t, props, "hidden")
	assert.NotContains(t, props, "Skipped")

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search query", query["description"])
	assert.Equal(t, "integer", props["limit"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])

	assert.Equal(t, []string{"query"}, schema["required"])
}

func TestCreateSchema_NonStruct(t *testing.T) {
	schema := CreateSchema(42)
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
			"limit": map[string]any{"type": "integer"},
		},
		"required": []string{"query"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"query": "x"}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"query": "x", "limit": 3.0}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"query": "x", "extra": true}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "query", vErr.Field)

	assert.Error(t, ValidateParameters(map[string]any{"query": 1}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"query": "x", "limit": 3.5}, schema))
}

func TestValidateParameters_RequiredFromJSON(t *testing.T) {
	// Schemas round-tripped through JSON carry required as []any.
	raw := `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &schema))

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"name": "ok"}, schema))
}
