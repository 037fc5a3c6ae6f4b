// Package chromem implements core.VectorIndex on chromem-go, a pure Go
// embedded vector database. Unlike the in-process rag.Index it can persist
// the document/embedding pairs to disk and reload them at process start.
package chromem

import (
	"context"
	"fmt"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "documents"

// Index wraps a chromem-go collection behind the core.VectorIndex contract.
// Embeddings are supplied by the caller, so the collection is created without
// an embedding function of its own.
type Index struct {
	mu   sync.Mutex
	col  *chromem.Collection
	next int
}

// New creates a volatile in-memory index.
func New() (*Index, error) {
	return newIndex(chromem.NewDB())
}

// NewPersistent creates (or reopens) an index persisted under dir. Documents
// added in earlier runs are available immediately.
func NewPersistent(dir string) (*Index, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("chromem: open persistent db: %w", err)
	}
	return newIndex(db)
}

func newIndex(db *chromem.DB) (*Index, error) {
	col, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: create collection: %w", err)
	}
	return &Index{col: col, next: col.Count()}, nil
}

// Add appends document/embedding pairs. IDs are sequential so reloaded
// indexes keep appending without collisions.
func (x *Index) Add(ctx context.Context, documents []string, embeddings [][]float32) error {
	if len(documents) != len(embeddings) {
		return fmt.Errorf("chromem: %d documents but %d embeddings", len(documents), len(embeddings))
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	for i, doc := range documents {
		id := fmt.Sprintf("doc_%08d", x.next)
		err := x.col.AddDocument(ctx, chromem.Document{
			ID:        id,
			Content:   doc,
			Embedding: embeddings[i],
		})
		if err != nil {
			return fmt.Errorf("chromem: add document: %w", err)
		}
		x.next++
	}
	return nil
}

// Search returns up to k documents ranked descending by similarity.
// chromem rejects result counts above the collection size, so k is clamped.
func (x *Index) Search(ctx context.Context, embedding []float32, k int) ([]string, error) {
	count := x.col.Count()
	if count == 0 || k <= 0 {
		return []string{}, nil
	}
	if k > count {
		k = count
	}
	results, err := x.col.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: query: %w", err)
	}
	out := make([]string, 0, len(results))
	for _, res := range results {
		out = append(out, res.Content)
	}
	return out, nil
}

// Count reports the number of stored documents.
func (x *Index) Count(context.Context) (int, error) {
	return x.col.Count(), nil
}
