// Package openaiembed implements core.Embedder using the OpenAI embeddings API.
package openaiembed

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

// Options configures the OpenAI embedding provider.
type Options struct {
	Model string
}

// Embedder maps text batches to vectors via the OpenAI embeddings endpoint.
type Embedder struct {
	client *openai.Client
	opts   Options
}

// New creates a new embedding provider using the official client.
func New(optFns ...func(o *Options)) *Embedder {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Embedder {
	opts := Options{Model: openai.EmbeddingModelTextEmbedding3Small}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Embedder{client: client, opts: opts}
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.opts.Model,
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings api error: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}
	out := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vec := make([]float32, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float32(v)
		}
		out[i] = vec
	}
	return out, nil
}
