package photo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/modelfolio/media-api/internal/middleware"
	"github.com/modelfolio/media-api/internal/pkg/response"
	"github.com/modelfolio/media-api/internal/pkg/storage"
	"github.com/modelfolio/media-api/internal/pkg/validator"
)

// Handler handles photo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// maxUploadMemory bounds the multipart parse buffer, not the file size.
// The validator owns the size ceiling.
const maxUploadMemory = 32 << 20

// Upload handles POST /photos. Accepts one or more files under the "photos"
// field; files are uploaded strictly sequentially so each one lands at the
// end of the collection in submission order.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart body")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		response.BadRequest(w, "No files provided")
		return
	}

	profileID := middleware.GetProfileID(r.Context())

	uploaded := make([]*PhotoResponse, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			response.BadRequest(w, "Could not read uploaded file")
			return
		}

		photo, err := h.service.Upload(r.Context(), profileID, header.Filename, file)
		file.Close()
		if err != nil {
			h.writeUploadError(w, err, header.Filename)
			return
		}

		uploaded = append(uploaded, PhotoResponseFromEntity(photo))
	}

	response.Created(w, uploaded)
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error, filename string) {
	switch {
	case errors.Is(err, storage.ErrInvalidMimeType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrEmptyFile):
		// The type/size distinction is surfaced verbatim in the UI
		response.ErrorWithDetails(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(),
			map[string]string{"file": filename})
	case errors.Is(err, ErrStorageFailure):
		response.Error(w, http.StatusServiceUnavailable, "STORAGE_FAILURE", ErrStorageFailure.Error())
	default:
		response.InternalError(w)
	}
}

// List handles GET /photos, the owner's full library including hidden photos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.GetProfileID(r.Context())

	photos, err := h.service.List(r.Context(), profileID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toResponses(photos))
}

// ListPublic handles GET /profiles/{id}/photos, only visible photos
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	photos, err := h.service.ListVisible(r.Context(), profileID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, toResponses(photos))
}

// Reorder handles PATCH /photos/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	profileID := middleware.GetProfileID(r.Context())
	if err := h.service.Reorder(r.Context(), profileID, req.PhotoIDs); err != nil {
		switch {
		case errors.Is(err, ErrStaleOrder):
			response.Conflict(w, ErrStaleOrder.Error())
		case errors.Is(err, ErrPhotoNotFound):
			response.Conflict(w, ErrStaleOrder.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	photos, err := h.service.List(r.Context(), profileID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, toResponses(photos))
}

// SetCaption handles PATCH /photos/{id}/caption
func (h *Handler) SetCaption(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	var req SetCaptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	profileID := middleware.GetProfileID(r.Context())
	if err := h.service.SetCaption(r.Context(), profileID, photoID, req.Caption); err != nil {
		h.writeMutationError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// SetVisibility handles PATCH /photos/{id}/visibility
func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	var req SetVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	profileID := middleware.GetProfileID(r.Context())
	if err := h.service.SetVisibility(r.Context(), profileID, photoID, req.IsVisible); err != nil {
		h.writeMutationError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// Delete handles DELETE /photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	profileID := middleware.GetProfileID(r.Context())
	if err := h.service.Delete(r.Context(), profileID, photoID); err != nil {
		h.writeMutationError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrPhotoNotFound) {
		response.NotFound(w, ErrPhotoNotFound.Error())
		return
	}
	response.InternalError(w)
}

func toResponses(photos []*Photo) []*PhotoResponse {
	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = PhotoResponseFromEntity(p)
	}
	return items
}
