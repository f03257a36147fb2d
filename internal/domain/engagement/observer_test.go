package engagement

import (
	"testing"

	"github.com/google/uuid"
)

func TestViewObserver_FiresOnceAtThreshold(t *testing.T) {
	var fired []uuid.UUID
	obs := NewViewObserver(0.5, func(id uuid.UUID) { fired = append(fired, id) })
	photoID := uuid.New()

	obs.Observe(photoID)

	if obs.Report(photoID, 0.3) {
		t.Error("below threshold should not view")
	}
	if !obs.Report(photoID, 0.6) {
		t.Error("crossing threshold should view")
	}
	if obs.Report(photoID, 0.9) {
		t.Error("viewed is terminal, further reports are ignored")
	}

	if len(fired) != 1 || fired[0] != photoID {
		t.Fatalf("callback should fire exactly once, got %v", fired)
	}
	if obs.State(photoID) != Viewed {
		t.Errorf("expected Viewed, got %v", obs.State(photoID))
	}
}

func TestViewObserver_ThresholdBoundary(t *testing.T) {
	obs := NewViewObserver(0.5, nil)
	photoID := uuid.New()
	obs.Observe(photoID)

	// Exactly at the threshold counts
	if !obs.Report(photoID, 0.5) {
		t.Error("fraction equal to threshold should view")
	}
}

func TestViewObserver_UnreportedElementsIgnored(t *testing.T) {
	obs := NewViewObserver(0, nil)
	photoID := uuid.New()

	// Fully visible but never observed
	if obs.Report(photoID, 1.0) {
		t.Error("report for an unobserved element should be ignored")
	}
	if obs.State(photoID) != Unobserved {
		t.Errorf("expected Unobserved, got %v", obs.State(photoID))
	}
}

func TestViewObserver_ScrollInAndOut(t *testing.T) {
	calls := 0
	obs := NewViewObserver(0.5, func(uuid.UUID) { calls++ })
	photoID := uuid.New()

	// Scrolls into view, out, and back in before ever crossing the threshold
	obs.Observe(photoID)
	obs.Report(photoID, 0.2)
	obs.Unobserve(photoID)
	if obs.State(photoID) != Unobserved {
		t.Fatal("unobserve before viewing should reset the element")
	}

	obs.Observe(photoID)
	obs.Report(photoID, 0.8)

	// Element leaves and re-enters after viewing; state survives
	obs.Unobserve(photoID)
	obs.Observe(photoID)
	obs.Report(photoID, 1.0)

	if calls != 1 {
		t.Fatalf("expected 1 view for the whole scroll history, got %d", calls)
	}
	if obs.State(photoID) != Viewed {
		t.Errorf("expected Viewed to survive unobserve, got %v", obs.State(photoID))
	}
}

func TestViewObserver_DefaultThreshold(t *testing.T) {
	obs := NewViewObserver(0, nil)
	photoID := uuid.New()
	obs.Observe(photoID)

	if obs.Report(photoID, 0.4) {
		t.Error("0.4 is below the default threshold")
	}
	if !obs.Report(photoID, 0.5) {
		t.Error("0.5 meets the default threshold")
	}
}
