// Package model defines the language model gateway contract used by the agent
// loop, plus a deterministic FakeModel backend for tests and offline runs.
// Provider-specific backends (OpenAI, Anthropic, Ollama) live in subpackages
// and adapt the normalized Request/Response structures to their wire formats.
//
// A gateway call is synchronous: the loop sends the full message sequence and
// the advertised tool catalog, and receives either natural-language content or
// a set of requested tool invocations. Exactly one of the two is meaningful
// per response; a response carrying tool calls has empty content.
package model
