package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access. Every read/write is scoped by the
// owning profile id where ownership matters.
type Repository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error)
	ListVisibleByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error)
	CountByProfile(ctx context.Context, profileID uuid.UUID) (int, error)
	MaxSortOrder(ctx context.Context, profileID uuid.UUID) (int, error)
	UpdateCaption(ctx context.Context, profileID, photoID uuid.UUID, caption *string) error
	UpdateVisibility(ctx context.Context, profileID, photoID uuid.UUID, visible bool) error
	UpdateSortOrders(ctx context.Context, profileID uuid.UUID, ranks []Rank) error
	DeleteAndCompact(ctx context.Context, profileID, photoID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO photos (id, profile_id, key, url, thumbnail_key, thumbnail_url, original_name,
			mime_type, size_bytes, width, height, caption, sort_order, is_visible,
			view_count, click_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		photo.ID,
		photo.ProfileID,
		photo.Key,
		photo.URL,
		photo.ThumbnailKey,
		photo.ThumbnailURL,
		photo.OriginalName,
		photo.MimeType,
		photo.SizeBytes,
		photo.Width,
		photo.Height,
		photo.Caption,
		photo.SortOrder,
		photo.IsVisible,
		photo.ViewCount,
		photo.ClickCount,
		photo.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM photos WHERE id = $1`
	var photo Photo
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM photos WHERE profile_id = $1 ORDER BY sort_order, created_at`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, profileID)
	return photos, err
}

func (r *repository) ListVisibleByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM photos WHERE profile_id = $1 AND is_visible ORDER BY sort_order, created_at`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, profileID)
	return photos, err
}

func (r *repository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM photos WHERE profile_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, profileID)
	return count, err
}

// MaxSortOrder returns -1 when the profile has no photos yet
func (r *repository) MaxSortOrder(ctx context.Context, profileID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), -1) FROM photos WHERE profile_id = $1`
	var max int
	err := r.db.GetContext(ctx, &max, query, profileID)
	return max, err
}

func (r *repository) UpdateCaption(ctx context.Context, profileID, photoID uuid.UUID, caption *string) error {
	query := `UPDATE photos SET caption = $3 WHERE id = $1 AND profile_id = $2`
	result, err := r.db.ExecContext(ctx, query, photoID, profileID, caption)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) UpdateVisibility(ctx context.Context, profileID, photoID uuid.UUID, visible bool) error {
	query := `UPDATE photos SET is_visible = $3 WHERE id = $1 AND profile_id = $2`
	result, err := r.db.ExecContext(ctx, query, photoID, profileID, visible)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateSortOrders applies a full rank assignment in one transaction so a
// partial batch never becomes visible.
func (r *repository) UpdateSortOrders(ctx context.Context, profileID uuid.UUID, ranks []Rank) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE photos SET sort_order = $3 WHERE id = $1 AND profile_id = $2`
	for _, rank := range ranks {
		result, err := tx.ExecContext(ctx, query, rank.ID, profileID, rank.SortOrder)
		if err != nil {
			return err
		}
		if err := requireRow(result); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteAndCompact removes the row and closes the rank gap left behind,
// preserving the survivors' relative order, in one transaction.
func (r *repository) DeleteAndCompact(ctx context.Context, profileID, photoID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedOrder int
	err = tx.GetContext(ctx, &deletedOrder,
		`DELETE FROM photos WHERE id = $1 AND profile_id = $2 RETURNING sort_order`,
		photoID, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPhotoNotFound
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE photos SET sort_order = sort_order - 1 WHERE profile_id = $1 AND sort_order > $2`,
		profileID, deletedOrder)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
