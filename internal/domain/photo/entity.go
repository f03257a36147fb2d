package photo

import (
	"time"

	"github.com/google/uuid"
)

// Photo represents one portfolio image (metadata only, binary lives in R2)
type Photo struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProfileID    uuid.UUID `db:"profile_id" json:"profile_id"`
	Key          string    `db:"key" json:"-"`   // R2 object key
	URL          string    `db:"url" json:"url"` // Public CDN URL
	ThumbnailKey *string   `db:"thumbnail_key" json:"-"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	Width        *int      `db:"width" json:"width,omitempty"`
	Height       *int      `db:"height" json:"height,omitempty"`
	Caption      *string   `db:"caption" json:"caption,omitempty"`
	SortOrder    int       `db:"sort_order" json:"sort_order"`
	IsVisible    bool      `db:"is_visible" json:"is_visible"`
	ViewCount    int64     `db:"view_count" json:"view_count"`
	ClickCount   int64     `db:"click_count" json:"click_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
