package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Index is an in-process cosine-similarity vector index. Documents and their
// embeddings are stored together, append-only; zero-norm vectors are treated
// as norm 1 so similarity never divides by zero. Equal scores break ties by
// insertion order.
//
// Suited to indexes rebuilt from source documents at process start; use the
// chromem subpackage when persistence is wanted.
type Index struct {
	mu         sync.RWMutex
	documents  []string
	embeddings [][]float32
}

// NewIndex constructs an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends document/embedding pairs.
func (x *Index) Add(_ context.Context, documents []string, embeddings [][]float32) error {
	if len(documents) != len(embeddings) {
		return fmt.Errorf("rag: %d documents but %d embeddings", len(documents), len(embeddings))
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.documents = append(x.documents, documents...)
	x.embeddings = append(x.embeddings, embeddings...)
	return nil
}

// Search returns up to k documents ranked descending by cosine similarity.
func (x *Index) Search(_ context.Context, embedding []float32, k int) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if len(x.documents) == 0 || k <= 0 {
		return []string{}, nil
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(x.documents))
	for i, emb := range x.embeddings {
		ranked[i] = scored{idx: i, score: cosine(embedding, emb)}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = x.documents[ranked[i].idx]
	}
	return out, nil
}

// Count reports the number of stored documents.
func (x *Index) Count(_ context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.documents), nil
}

// cosine computes cosine similarity, treating zero vectors as unit norm.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	na := math.Sqrt(normA)
	nb := math.Sqrt(normB)
	if na == 0 {
		na = 1
	}
	if nb == 0 {
		nb = 1
	}
	return dot / (na * nb)
}
