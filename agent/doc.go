// Package agent contains the bounded reasoning loop at the center of
// agentcore. Each Chat invocation assembles context from the memory tiers and
// the retrieval index, then alternates between the model gateway and the tool
// registry until the model produces plain content or the step ceiling is
// reached.
//
// Design principles:
//   - No hidden global state: every collaborator is injected at construction
//   - Termination is guaranteed by the hard max-steps ceiling
//   - Retrieval is best effort and never fatal; durable-store faults are hard errors
//   - Tool failures surface as ordinary tool messages, never as loop aborts
package agent
