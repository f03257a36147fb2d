package engagement

import "github.com/google/uuid"

// TrackRequest for POST /engagement
type TrackRequest struct {
	PhotoID   uuid.UUID `json:"photo_id" validate:"required"`
	EventType string    `json:"event_type" validate:"required,event_type"`
}

// TrackResponse reports whether the event was counted
type TrackResponse struct {
	Tracked bool `json:"tracked"`
}
