package rag

import (
	"context"
	"fmt"

	"github.com/modularai/agentcore/core"
)

// DefaultTopK is the passage count used when a caller does not specify one.
const DefaultTopK = 3

// Retriever pairs an embedding provider with a vector index to offer the two
// operations the agent loop needs: document ingestion and similarity search.
// It assumes nothing about the provider beyond the core.Embedder contract.
type Retriever struct {
	index    core.VectorIndex
	embedder core.Embedder
}

// NewRetriever constructs a Retriever over the given index and embedder.
func NewRetriever(index core.VectorIndex, embedder core.Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// AddDocuments embeds each document and appends the document/embedding pairs
// to the index. A no-op for empty input.
func (r *Retriever) AddDocuments(ctx context.Context, documents []string) error {
	if len(documents) == 0 {
		return nil
	}
	embeddings, err := r.embedder.Embed(ctx, documents)
	if err != nil {
		return fmt.Errorf("rag: embed documents: %w", err)
	}
	if len(embeddings) != len(documents) {
		return fmt.Errorf("rag: embedder returned %d vectors for %d documents", len(embeddings), len(documents))
	}
	if err := r.index.Add(ctx, documents, embeddings); err != nil {
		return fmt.Errorf("rag: index documents: %w", err)
	}
	return nil
}

// Search returns up to k documents most similar to the query, ranked
// descending by cosine similarity. An empty index yields an empty slice
// without consulting the embedder.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	count, err := r.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("rag: count documents: %w", err)
	}
	if count == 0 {
		return []string{}, nil
	}
	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("rag: embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return []string{}, nil
	}
	results, err := r.index.Search(ctx, embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("rag: search index: %w", err)
	}
	return results, nil
}
