// Package testutil contains helper implementations and fixtures used across
// tests to reduce boilerplate: an in-memory long-term store, a failing store
// and a failing embedder for degradation tests, and a scripted model backend.
// These helpers are intentionally minimal and not intended for production usage.
package testutil
