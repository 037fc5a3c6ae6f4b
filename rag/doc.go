// Package rag implements retrieval-augmented context: a Retriever that pairs
// an Embedder with a VectorIndex, an in-process cosine-similarity Index, and
// a deterministic HashEmbedder for tests and offline runs. Embedding
// providers and the embedded vector-database index live in subpackages.
package rag
