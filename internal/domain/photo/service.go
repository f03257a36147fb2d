package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/modelfolio/media-api/internal/pkg/imaging"
	"github.com/modelfolio/media-api/internal/pkg/storage"
)

// Service orchestrates the media library: it is the only sanctioned way to
// mutate a profile's photo collection and it keeps the dense sort_order
// invariant after every mutation.
type Service struct {
	repo           Repository
	store          storage.Storage
	processor      *imaging.Processor
	maxUploadBytes int64
}

// NewService creates photo service. processor may be nil (thumbnails disabled).
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor, maxUploadBytes int64) *Service {
	return &Service{
		repo:           repo,
		store:          store,
		processor:      processor,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload validates the file, writes it to the object store and inserts the
// record at the end of the owner's collection. If the record insert fails
// after the binary landed, the orphaned object is removed best-effort so
// partial failures don't leak storage.
func (s *Service) Upload(ctx context.Context, profileID uuid.UUID, originalName string, reader io.Reader) (*Photo, error) {
	data, mimeType, err := storage.ValidateFile(reader, s.maxUploadBytes)
	if err != nil {
		return nil, err
	}

	key := objectKey(profileID, originalName, mimeType)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	photo := &Photo{
		ID:           uuid.New(),
		ProfileID:    profileID,
		Key:          key,
		URL:          s.store.GetURL(key),
		OriginalName: originalName,
		MimeType:     mimeType,
		SizeBytes:    int64(len(data)),
		IsVisible:    true,
		CreatedAt:    time.Now(),
	}

	s.attachThumbnail(ctx, photo, data)

	maxOrder, err := s.repo.MaxSortOrder(ctx, profileID)
	if err != nil {
		s.cleanupObjects(photo)
		return nil, err
	}
	photo.SortOrder = maxOrder + 1

	if err := s.repo.Create(ctx, photo); err != nil {
		s.cleanupObjects(photo)
		return nil, err
	}

	return photo, nil
}

// attachThumbnail renders and stores a thumbnail, best-effort. A photo
// without a thumbnail is fine; a failed upload because of one is not.
func (s *Service) attachThumbnail(ctx context.Context, photo *Photo, data []byte) {
	if s.processor == nil {
		return
	}

	processed, err := s.processor.Process(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("key", photo.Key).Msg("Thumbnail generation skipped")
		return
	}

	photo.Width = &processed.Width
	photo.Height = &processed.Height

	thumbKey := "thumbs/" + strings.TrimPrefix(photo.Key, "photos/")
	thumbKey = strings.TrimSuffix(thumbKey, filepath.Ext(thumbKey)) + ".jpg"
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), "image/jpeg"); err != nil {
		log.Warn().Err(err).Str("key", thumbKey).Msg("Thumbnail upload failed")
		return
	}

	thumbURL := s.store.GetURL(thumbKey)
	photo.ThumbnailKey = &thumbKey
	photo.ThumbnailURL = &thumbURL
}

// cleanupObjects removes the binary (and thumbnail) written for a photo whose
// record never made it to the database. Attempted once; its own failure is
// logged, the original error is what the caller surfaces.
func (s *Service) cleanupObjects(photo *Photo) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Delete(ctx, photo.Key); err != nil {
		log.Error().Err(err).Str("key", photo.Key).Msg("Failed to clean up orphaned object")
	}
	if photo.ThumbnailKey != nil {
		if err := s.store.Delete(ctx, *photo.ThumbnailKey); err != nil {
			log.Error().Err(err).Str("key", *photo.ThumbnailKey).Msg("Failed to clean up orphaned thumbnail")
		}
	}
}

// List returns all of the owner's photos ascending by sort order
func (s *Service) List(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// ListVisible returns the photos shown on the public portfolio
func (s *Service) ListVisible(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	return s.repo.ListVisibleByProfile(ctx, profileID)
}

// Reorder assigns sort_order = index for each id at its position. The caller
// must supply the complete id list for the owner; a list whose id set does
// not match the current collection exactly is rejected (stale-list
// protection), so a reorder is always a permutation, never a rewrite.
func (s *Service) Reorder(ctx context.Context, profileID uuid.UUID, photoIDs []uuid.UUID) error {
	current, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return err
	}

	if len(photoIDs) != len(current) {
		return ErrStaleOrder
	}
	owned := make(map[uuid.UUID]bool, len(current))
	for _, p := range current {
		owned[p.ID] = true
	}
	for _, id := range photoIDs {
		if !owned[id] {
			return ErrStaleOrder
		}
		delete(owned, id) // catches duplicates in the request
	}

	ranks := make([]Rank, len(photoIDs))
	for i, id := range photoIDs {
		ranks[i] = Rank{ID: id, SortOrder: i}
	}

	return s.repo.UpdateSortOrders(ctx, profileID, ranks)
}

// SetCaption trims whitespace and normalizes an empty caption to absence
func (s *Service) SetCaption(ctx context.Context, profileID, photoID uuid.UUID, caption string) error {
	trimmed := strings.TrimSpace(caption)
	var value *string
	if trimmed != "" {
		value = &trimmed
	}
	return s.repo.UpdateCaption(ctx, profileID, photoID, value)
}

// SetVisibility toggles the public flag; ordering is untouched
func (s *Service) SetVisibility(ctx context.Context, profileID, photoID uuid.UUID, visible bool) error {
	return s.repo.UpdateVisibility(ctx, profileID, photoID, visible)
}

// Delete removes the record, attempts object removal and re-densifies the
// survivors. A failed object removal is logged and swallowed: a dangling
// storage object is cheaper than a dangling database row.
func (s *Service) Delete(ctx context.Context, profileID, photoID uuid.UUID) error {
	photo, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil || photo.ProfileID != profileID {
		// Cross-owner references answer "not found", never leak existence
		return ErrPhotoNotFound
	}

	if err := s.repo.DeleteAndCompact(ctx, profileID, photoID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, photo.Key); err != nil {
		log.Error().Err(err).Str("key", photo.Key).Msg("Failed to remove object for deleted photo")
	}
	if photo.ThumbnailKey != nil {
		if err := s.store.Delete(ctx, *photo.ThumbnailKey); err != nil {
			log.Error().Err(err).Str("key", *photo.ThumbnailKey).Msg("Failed to remove thumbnail for deleted photo")
		}
	}

	return nil
}

// objectKey builds a collision-resistant key scoped to the owner:
// photos/{profile}/{uuid}{ext}. No two photos ever share a key.
func objectKey(profileID uuid.UUID, originalName, mimeType string) string {
	ext := storage.ExtensionForMime(mimeType)
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(originalName))
	}
	return fmt.Sprintf("photos/%s/%s%s", profileID, uuid.New(), ext)
}
