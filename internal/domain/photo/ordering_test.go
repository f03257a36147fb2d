package photo

import (
	"testing"

	"github.com/google/uuid"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestComputeRanks_MoveToFront(t *testing.T) {
	// [A,B,C], move C to index 0 -> [C,A,B]
	order := ids(3)
	a, b, c := order[0], order[1], order[2]

	ranks, err := ComputeRanks(order, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Apply(ranks)
	want := []uuid.UUID{c, a, b}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestComputeRanks_MoveForward(t *testing.T) {
	// [A,B,C,D], move A to index 2 -> [B,C,A,D]
	order := ids(4)
	a, b, c, d := order[0], order[1], order[2], order[3]

	ranks, err := ComputeRanks(order, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Apply(ranks)
	want := []uuid.UUID{b, c, a, d}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestComputeRanks_Dense(t *testing.T) {
	order := ids(6)
	ranks, err := ComputeRanks(order, 4, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ranks) != len(order) {
		t.Fatalf("expected full assignment of %d ranks, got %d", len(order), len(ranks))
	}

	seen := make(map[int]bool)
	for _, r := range ranks {
		if r.SortOrder < 0 || r.SortOrder >= len(order) {
			t.Fatalf("rank %d out of dense range", r.SortOrder)
		}
		if seen[r.SortOrder] {
			t.Fatalf("duplicate rank %d", r.SortOrder)
		}
		seen[r.SortOrder] = true
	}
}

func TestComputeRanks_StableOutsideSpan(t *testing.T) {
	order := ids(5)
	ranks, err := ComputeRanks(order, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Apply(ranks)
	// Elements outside [1,3] keep their positions
	if got[0] != order[0] {
		t.Errorf("element before the span moved")
	}
	if got[4] != order[4] {
		t.Errorf("element after the span moved")
	}
}

func TestComputeRanks_SamePosition(t *testing.T) {
	order := ids(3)
	ranks, err := ComputeRanks(order, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Apply(ranks)
	for i := range order {
		if got[i] != order[i] {
			t.Fatalf("no-op move changed the sequence at %d", i)
		}
	}
}

func TestComputeRanks_IndexOutOfRange(t *testing.T) {
	order := ids(3)
	if _, err := ComputeRanks(order, 3, 0); err == nil {
		t.Error("expected error for source index out of range")
	}
	if _, err := ComputeRanks(order, 0, -1); err == nil {
		t.Error("expected error for target index out of range")
	}
}
