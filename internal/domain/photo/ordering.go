package photo

import (
	"fmt"

	"github.com/google/uuid"
)

// Rank pairs a photo id with its new dense position
type Rank struct {
	ID        uuid.UUID
	SortOrder int
}

// ComputeRanks moves the element at from to position to within order and
// returns the dense 0..N-1 rank assignment for the whole sequence. Every
// element between the two positions shifts by one, so the full assignment
// is returned rather than just the moved element. Elements outside the
// from..to span keep their relative order and their rank.
func ComputeRanks(order []uuid.UUID, from, to int) ([]Rank, error) {
	n := len(order)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("target index %d out of range [0,%d)", to, n)
	}

	moved := make([]uuid.UUID, 0, n)
	moved = append(moved, order[:from]...)
	moved = append(moved, order[from+1:]...)

	moved = append(moved, uuid.Nil)
	copy(moved[to+1:], moved[to:])
	moved[to] = order[from]

	ranks := make([]Rank, n)
	for i, id := range moved {
		ranks[i] = Rank{ID: id, SortOrder: i}
	}
	return ranks, nil
}

// Apply returns the id sequence described by a rank assignment
func Apply(ranks []Rank) []uuid.UUID {
	out := make([]uuid.UUID, len(ranks))
	for _, r := range ranks {
		out[r.SortOrder] = r.ID
	}
	return out
}
