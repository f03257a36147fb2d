package photo

import (
	"time"

	"github.com/google/uuid"
)

// ReorderRequest for PATCH /photos/reorder. PhotoIDs must be the complete
// id list for the owner in the desired final order.
type ReorderRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" validate:"required,min=1"`
}

// SetCaptionRequest for PATCH /photos/{id}/caption
type SetCaptionRequest struct {
	Caption string `json:"caption" validate:"max=500"`
}

// SetVisibilityRequest for PATCH /photos/{id}/visibility
type SetVisibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

// PhotoResponse represents photo in API response
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	SortOrder    int       `json:"sort_order"`
	IsVisible    bool      `json:"is_visible"`
	ViewCount    int64     `json:"view_count"`
	ClickCount   int64     `json:"click_count"`
	CreatedAt    string    `json:"created_at"`
}

// PhotoResponseFromEntity converts entity to response DTO
func PhotoResponseFromEntity(p *Photo) *PhotoResponse {
	resp := &PhotoResponse{
		ID:           p.ID,
		ProfileID:    p.ProfileID,
		URL:          p.URL,
		OriginalName: p.OriginalName,
		MimeType:     p.MimeType,
		SizeBytes:    p.SizeBytes,
		SortOrder:    p.SortOrder,
		IsVisible:    p.IsVisible,
		ViewCount:    p.ViewCount,
		ClickCount:   p.ClickCount,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.ThumbnailURL != nil {
		resp.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Caption != nil {
		resp.Caption = *p.Caption
	}
	if p.Width != nil {
		resp.Width = *p.Width
	}
	if p.Height != nil {
		resp.Height = *p.Height
	}
	return resp
}
