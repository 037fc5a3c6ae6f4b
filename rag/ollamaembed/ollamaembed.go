// Package ollamaembed implements core.Embedder against a locally hosted
// Ollama instance via its native embeddings endpoint.
package ollamaembed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultHost is the standard local Ollama address.
const DefaultHost = "http://localhost:11434"

// Options configures the Ollama embedding provider.
type Options struct {
	Host       string
	Model      string
	HTTPClient *http.Client
}

// Embedder calls Ollama's /api/embeddings endpoint, one request per text.
type Embedder struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
}

// New creates a provider for a local Ollama instance.
func New(optFns ...func(o *Options)) *Embedder {
	opts := Options{
		Host:       DefaultHost,
		Model:      "nomic-embed-text",
		HTTPClient: http.DefaultClient,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	return &Embedder{
		baseURL:    strings.TrimRight(opts.Host, "/"),
		modelName:  opts.Model,
		httpClient: opts.HTTPClient,
	}
}

type wireRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type wireResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (e *Embedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(wireRequest{Model: e.modelName, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ollama embeddings: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("ollama embeddings: decode response: %w", err)
	}
	return wire.Embedding, nil
}
