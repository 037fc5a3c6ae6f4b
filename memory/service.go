package memory

import (
	"context"

	"github.com/modularai/agentcore/core"
)

// Service joins the volatile short-term buffer with a durable long-term
// store behind one facade, which is what the agent loop and the built-in
// memory tools depend on.
type Service struct {
	shortTerm *ShortTerm
	longTerm  core.LongTermStore
}

// NewService constructs a Service over the provided tiers.
func NewService(shortTerm *ShortTerm, longTerm core.LongTermStore) *Service {
	return &Service{shortTerm: shortTerm, longTerm: longTerm}
}

// AddShortTerm records a turn in the user's volatile buffer.
func (s *Service) AddShortTerm(userID, role, content string) {
	s.shortTerm.Add(userID, role, content)
}

// GetShortTerm returns the user's buffered turns in chronological order.
func (s *Service) GetShortTerm(userID string) []core.Message {
	return s.shortTerm.Get(userID)
}

// AddLongTerm durably appends a record. Storage faults propagate to the
// caller; they are never swallowed.
func (s *Service) AddLongTerm(ctx context.Context, userID, content string) error {
	return s.longTerm.Add(ctx, userID, content)
}

// GetLongTerm returns up to limit most-recent record contents, newest first.
func (s *Service) GetLongTerm(ctx context.Context, userID string, limit int) ([]string, error) {
	return s.longTerm.Get(ctx, userID, limit)
}
