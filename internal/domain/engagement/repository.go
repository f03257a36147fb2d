package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository applies counter increments. Counters only ever go up and only
// through this path.
type Repository interface {
	Increment(ctx context.Context, photoID uuid.UUID, event EventType) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates engagement repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Increment(ctx context.Context, photoID uuid.UUID, event EventType) error {
	var query string
	switch event {
	case EventView:
		query = `UPDATE photos SET view_count = view_count + 1 WHERE id = $1`
	case EventClick, EventExpand:
		// Expands are click-type interactions, they share the click counter
		query = `UPDATE photos SET click_count = click_count + 1 WHERE id = $1`
	default:
		return fmt.Errorf("unknown event type: %s", event)
	}

	_, err := r.db.ExecContext(ctx, query, photoID)
	return err
}
