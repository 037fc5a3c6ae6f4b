package rag

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashEmbedder is a deterministic embedding provider for tests and offline
// runs. Each text becomes a bag-of-words vector: every lowercased token is
// hashed into one of Dimensions buckets and counted, then the vector is
// normalized to unit length. Texts sharing words therefore score higher
// cosine similarity, which is enough for retrieval plumbing to behave
// realistically without a model.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder constructs a HashEmbedder with the given dimension count
// (64 when non-positive).
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 64
	}
	return &HashEmbedder{dimensions: dimensions}
}

// Embed maps each text to its bag-of-words vector.
func (e *HashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embedOne(text)
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (e *HashEmbedder) Dimensions() int { return e.dimensions }

func (e *HashEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dimensions)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(e.dimensions)]++
	}
	return normalize(vec)
}

// normalize scales the vector to unit length; zero vectors pass through.
func normalize(vec []float32) []float32 {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}
