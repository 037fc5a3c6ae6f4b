// Package redis implements core.LongTermStore on a Redis list per user.
// It is an alternative to the sqlite backend for deployments that already
// run Redis; records are pushed to the head of the user's list so recency
// queries are a single LRANGE.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "agentcore:memory:"

// Options configures the Redis store.
type Options struct {
	// KeyPrefix namespaces the per-user lists. Defaults to "agentcore:memory:".
	KeyPrefix string
}

// Store is a long-term memory store backed by Redis lists. Works with
// go-redis Client, ClusterClient and Ring via the Cmdable interface.
type Store struct {
	client redis.Cmdable
	prefix string
}

// record is the stored wire shape for one memory entry.
type record struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// New constructs a Store over an existing Redis client.
func New(client redis.Cmdable, optFns ...func(o *Options)) *Store {
	opts := Options{KeyPrefix: defaultKeyPrefix}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	return &Store{client: client, prefix: opts.KeyPrefix}
}

func (s *Store) key(userID string) string { return s.prefix + userID }

// Add durably appends a timestamped record for the user.
func (s *Store) Add(ctx context.Context, userID, content string) error {
	data, err := json.Marshal(record{Content: content, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("redis: marshal record: %w", err)
	}
	if err := s.client.LPush(ctx, s.key(userID), data).Err(); err != nil {
		return fmt.Errorf("redis: push memory: %w", err)
	}
	return nil
}

// Get returns up to limit most-recent record contents, newest first.
func (s *Store) Get(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	raw, err := s.client.LRange(ctx, s.key(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: range memories: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var rec record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			// Tolerate plain-string entries written by other producers.
			out = append(out, item)
			continue
		}
		out = append(out, rec.Content)
	}
	return out, nil
}
