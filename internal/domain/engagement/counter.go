package engagement

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Counter tracks view/click/expand events per photo. Views are deduplicated
// per session; every event kind is deduplicated against an identical request
// already in flight (guards double-fire from overlapping triggers). Delivery
// failures are swallowed: analytics never surface an error or block the UI,
// callers only learn whether the event was counted.
type Counter struct {
	repo     Repository
	sessions SessionStore

	mu       sync.Mutex
	inflight map[string]bool
}

// NewCounter creates an engagement counter. One instance per process; the
// session scoping lives in the SessionStore keys, not in the instance.
func NewCounter(repo Repository, sessions SessionStore) *Counter {
	return &Counter{
		repo:     repo,
		sessions: sessions,
		inflight: make(map[string]bool),
	}
}

// Track records one event and reports whether it was counted.
func (c *Counter) Track(ctx context.Context, sessionID string, photoID uuid.UUID, event EventType) bool {
	if !event.Valid() {
		return false
	}

	key := sessionID + "|" + photoID.String() + "|" + string(event)
	if !c.begin(key) {
		// Identical request already in flight, drop rather than double count
		return false
	}
	defer c.end(key)

	if event == EventView {
		first, err := c.sessions.MarkViewed(ctx, sessionID, photoID)
		if err != nil {
			log.Warn().Err(err).Str("photo_id", photoID.String()).Msg("View dedup check failed, event dropped")
			return false
		}
		if !first {
			return false
		}
	}

	if err := c.repo.Increment(ctx, photoID, event); err != nil {
		log.Warn().Err(err).
			Str("photo_id", photoID.String()).
			Str("event", string(event)).
			Msg("Engagement increment failed, event dropped")
		return false
	}

	return true
}

func (c *Counter) begin(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return false
	}
	c.inflight[key] = true
	return true
}

func (c *Counter) end(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}
