package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key holding the journal list, newest first.
	journalKey = "ticketd:audit:events"

	// Retention window for the redis journal; older entries are trimmed on
	// append.
	journalMaxLen = 100_000
)

// RedisStore keeps the journal in a capped Redis list. Recommended when
// several replicas of the external tooling need to read the same journal.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, journalKey, payload)
	pipe.LTrim(ctx, journalKey, 0, journalMaxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *RedisStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = journalMaxLen
	}
	raw, err := s.client.LRange(ctx, journalKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("unmarshal audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
