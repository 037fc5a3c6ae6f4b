// Package memory contains the short-term conversation buffer and the Service
// facade joining it with a durable long-term store. The LongTermStore
// interface resides in the core package; concrete backends live in the
// sqlite and redis subpackages and are selected at wiring time.
//
// Short-term state is volatile and partitioned by user key: each user owns a
// capacity-bounded buffer of recent turns with strict FIFO eviction, living
// only for the process lifetime. Long-term records are durable, append-only
// and queryable by recency.
package memory
