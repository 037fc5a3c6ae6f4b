package memory

import (
	"sync"

	"github.com/modularai/agentcore/core"
)

// DefaultShortTermCapacity bounds a user's buffer when no capacity is configured.
const DefaultShortTermCapacity = 20

// ShortTerm is a volatile per-user buffer of recent conversation turns.
// Buffers are created lazily on first Add and never exceed the configured
// capacity: once full, adding a turn drops the oldest one (strict FIFO).
//
// Safe for concurrent use across users. Concurrent Adds for the same user
// are individually atomic but their relative order follows lock acquisition;
// callers that need strict per-user turn ordering must serialize their own
// calls (the HTTP layer does this with a per-user mutex).
type ShortTerm struct {
	mu       sync.RWMutex
	capacity int
	buffers  map[string][]core.Message
}

// NewShortTerm constructs an empty buffer store with the given per-user
// capacity. Non-positive capacities fall back to DefaultShortTermCapacity.
func NewShortTerm(capacity int) *ShortTerm {
	if capacity <= 0 {
		capacity = DefaultShortTermCapacity
	}
	return &ShortTerm{
		capacity: capacity,
		buffers:  make(map[string][]core.Message),
	}
}

// Add appends a turn to the user's buffer, evicting the oldest turn when the
// buffer is at capacity.
func (s *ShortTerm) Add(userID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.buffers[userID]
	if len(buf) >= s.capacity {
		buf = buf[len(buf)-s.capacity+1:]
	}
	s.buffers[userID] = append(buf, core.Message{Role: role, Content: content})
}

// Get returns the user's buffer contents in chronological order. The result
// is a copy; mutating it does not affect internal state. Unknown users yield
// an empty slice.
func (s *ShortTerm) Get(userID string) []core.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	buf, ok := s.buffers[userID]
	if !ok {
		return []core.Message{}
	}
	out := make([]core.Message, len(buf))
	copy(out, buf)
	return out
}

// Len reports the current number of buffered turns for the user.
func (s *ShortTerm) Len(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers[userID])
}
