package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// countingRepo records increments per (photo, event)
type countingRepo struct {
	counts  map[string]int
	failErr error

	// When set, Increment blocks until released is closed
	entered  chan struct{}
	released chan struct{}
}

func newCountingRepo() *countingRepo {
	return &countingRepo{counts: make(map[string]int)}
}

func (r *countingRepo) Increment(_ context.Context, photoID uuid.UUID, event EventType) error {
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.released
	}
	if r.failErr != nil {
		return r.failErr
	}
	r.counts[photoID.String()+"|"+string(event)]++
	return nil
}

func (r *countingRepo) count(photoID uuid.UUID, event EventType) int {
	return r.counts[photoID.String()+"|"+string(event)]
}

func TestTrack_ViewDedupedPerSession(t *testing.T) {
	repo := newCountingRepo()
	counter := NewCounter(repo, NewMemorySessionStore())
	ctx := context.Background()
	photoID := uuid.New()

	if !counter.Track(ctx, "sess-1", photoID, EventView) {
		t.Fatal("first view should count")
	}
	if counter.Track(ctx, "sess-1", photoID, EventView) {
		t.Fatal("repeat view in the same session should not count")
	}
	if got := repo.count(photoID, EventView); got != 1 {
		t.Fatalf("expected 1 view increment, got %d", got)
	}

	// A different session views independently
	if !counter.Track(ctx, "sess-2", photoID, EventView) {
		t.Fatal("view from another session should count")
	}
	if got := repo.count(photoID, EventView); got != 2 {
		t.Fatalf("expected 2 view increments, got %d", got)
	}
}

func TestTrack_DistinctPhotosCountSeparately(t *testing.T) {
	repo := newCountingRepo()
	counter := NewCounter(repo, NewMemorySessionStore())
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()

	if !counter.Track(ctx, "sess-1", first, EventView) {
		t.Fatal("first photo view should count")
	}
	if !counter.Track(ctx, "sess-1", second, EventView) {
		t.Fatal("second photo view should count")
	}
	if repo.count(first, EventView) != 1 || repo.count(second, EventView) != 1 {
		t.Fatal("each photo should carry its own count")
	}
}

func TestTrack_ClicksNeverDeduped(t *testing.T) {
	repo := newCountingRepo()
	counter := NewCounter(repo, NewMemorySessionStore())
	ctx := context.Background()
	photoID := uuid.New()

	for i := 0; i < 3; i++ {
		if !counter.Track(ctx, "sess-1", photoID, EventClick) {
			t.Fatalf("click %d should count", i)
		}
	}
	if got := repo.count(photoID, EventClick); got != 3 {
		t.Fatalf("expected 3 click increments, got %d", got)
	}
}

func TestTrack_ExpandCountsAsClick(t *testing.T) {
	repo := newCountingRepo()
	counter := NewCounter(repo, NewMemorySessionStore())

	photoID := uuid.New()
	if !counter.Track(context.Background(), "sess-1", photoID, EventExpand) {
		t.Fatal("expand should count")
	}
	if got := repo.count(photoID, EventExpand); got != 1 {
		t.Fatalf("expected 1 expand increment, got %d", got)
	}
}

func TestTrack_InvalidEventDropped(t *testing.T) {
	repo := newCountingRepo()
	counter := NewCounter(repo, NewMemorySessionStore())

	if counter.Track(context.Background(), "sess-1", uuid.New(), EventType("hover")) {
		t.Fatal("unknown event kind should not count")
	}
	if len(repo.counts) != 0 {
		t.Fatal("unknown event kind should not reach the repository")
	}
}

func TestTrack_RepositoryFailureSwallowed(t *testing.T) {
	repo := newCountingRepo()
	repo.failErr = errors.New("db down")
	counter := NewCounter(repo, NewMemorySessionStore())

	if counter.Track(context.Background(), "sess-1", uuid.New(), EventClick) {
		t.Fatal("failed increment should report not counted, not panic or error")
	}
}

func TestTrack_InFlightDuplicateDropped(t *testing.T) {
	repo := newCountingRepo()
	repo.entered = make(chan struct{}, 1)
	repo.released = make(chan struct{})
	counter := NewCounter(repo, NewMemorySessionStore())
	ctx := context.Background()
	photoID := uuid.New()

	done := make(chan bool, 1)
	go func() {
		done <- counter.Track(ctx, "sess-1", photoID, EventClick)
	}()

	// Wait until the first request is inside the repository call
	<-repo.entered

	// The identical request arriving mid-flight is dropped
	if counter.Track(ctx, "sess-1", photoID, EventClick) {
		t.Error("duplicate in-flight request should be dropped")
	}

	close(repo.released)
	if !<-done {
		t.Fatal("original request should have counted")
	}
	if got := repo.count(photoID, EventClick); got != 1 {
		t.Fatalf("expected exactly 1 increment, got %d", got)
	}
}
