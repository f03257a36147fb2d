package engagement

import (
	"encoding/json"
	"net/http"

	"github.com/modelfolio/media-api/internal/middleware"
	"github.com/modelfolio/media-api/internal/pkg/response"
	"github.com/modelfolio/media-api/internal/pkg/validator"
)

// Handler handles engagement HTTP requests
type Handler struct {
	counter *Counter
}

// NewHandler creates engagement handler
func NewHandler(counter *Counter) *Handler {
	return &Handler{counter: counter}
}

// Track handles POST /engagement. Always answers 200 with {tracked};
// an uncounted event is not an error the client should react to.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sessionID := middleware.GetSessionID(r.Context())
	tracked := h.counter.Track(r.Context(), sessionID, req.PhotoID, EventType(req.EventType))

	response.OK(w, TrackResponse{Tracked: tracked})
}
