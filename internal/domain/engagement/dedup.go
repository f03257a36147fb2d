package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore remembers which photos a viewing session has already counted
// a view for. One session, at most one view per photo.
type SessionStore interface {
	// MarkViewed records the (session, photo) pair and reports whether this
	// was the first view of that photo in the session.
	MarkViewed(ctx context.Context, sessionID string, photoID uuid.UUID) (bool, error)
}

// RedisSessionStore backs session dedup with Redis so it survives across
// server instances. Keys expire with the session TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) MarkViewed(ctx context.Context, sessionID string, photoID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("engagement:view:%s:%s", sessionID, photoID)
	return s.client.SetNX(ctx, key, 1, s.ttl).Result()
}

// MemorySessionStore keeps the dedup set in process memory. Used by the
// embedded gallery editor and by tests; one instance per session lifetime,
// never shared across tenants.
type MemorySessionStore struct {
	mu     sync.Mutex
	viewed map[string]bool
}

// NewMemorySessionStore creates an in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{viewed: make(map[string]bool)}
}

func (s *MemorySessionStore) MarkViewed(_ context.Context, sessionID string, photoID uuid.UUID) (bool, error) {
	key := sessionID + ":" + photoID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewed[key] {
		return false, nil
	}
	s.viewed[key] = true
	return true, nil
}
