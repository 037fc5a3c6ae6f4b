// Package core contains the shared domain contracts for agentcore: the
// conversation message model exchanged with language model backends, the
// tool call / tool specification shapes, and the storage capability
// interfaces (LongTermStore, VectorIndex, Embedder).
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (SQL stores, vector databases, embedding providers) to be added
// in their own packages without introducing dependency cycles. Depend on the
// interfaces here; select an implementation at wiring time.
package core
