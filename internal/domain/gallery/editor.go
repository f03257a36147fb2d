package gallery

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/modelfolio/media-api/internal/domain/photo"
)

var (
	ErrSaveInFlight = errors.New("a save is already in progress")
	ErrNoActiveDrag = errors.New("no drag in progress")
	ErrUnknownPhoto = errors.New("photo is not in the local library")
)

// LibraryClient is the slice of the media library the editor drives.
// *photo.Service satisfies it; remote clients can too.
type LibraryClient interface {
	List(ctx context.Context, profileID uuid.UUID) ([]*photo.Photo, error)
	Reorder(ctx context.Context, profileID uuid.UUID, photoIDs []uuid.UUID) error
	SetVisibility(ctx context.Context, profileID, photoID uuid.UUID, visible bool) error
	SetCaption(ctx context.Context, profileID, photoID uuid.UUID, caption string) error
}

// Editor is the drag-reorder surface over one owner's library. It keeps an
// optimistic local copy: drags and visibility toggles apply locally and
// accumulate until an explicit Save flushes them in one batch. Reordering is
// a high-frequency local interaction; committing every drag would flood the
// backend with writes and expose half-finished arrangements. Caption edits
// happen one field at a time, so they persist immediately instead of
// joining the batch.
//
// Reconciliation is last-write-wins: on save success the local copy is
// replaced wholesale by the server truth, on failure local changes are
// discarded and the sequence refetched. No field-by-field patching.
type Editor struct {
	client    LibraryClient
	profileID uuid.UUID

	mu                sync.Mutex
	photos            []*photo.Photo
	pendingVisibility map[uuid.UUID]bool
	dragging          uuid.UUID
	dirty             bool
	saving            bool
}

// NewEditor creates an editor for one owner's library. Call Load before use.
func NewEditor(client LibraryClient, profileID uuid.UUID) *Editor {
	return &Editor{
		client:            client,
		profileID:         profileID,
		pendingVisibility: make(map[uuid.UUID]bool),
	}
}

// Load replaces the local copy with the server truth and clears all
// pending state.
func (e *Editor) Load(ctx context.Context) error {
	photos, err := e.client.List(ctx, e.profileID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.photos = photos
	e.pendingVisibility = make(map[uuid.UUID]bool)
	e.dragging = uuid.Nil
	e.dirty = false
	return nil
}

// Photos returns a snapshot of the local sequence
func (e *Editor) Photos() []*photo.Photo {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*photo.Photo, len(e.photos))
	copy(out, e.photos)
	return out
}

// HasUnsavedChanges reports whether a Save would write anything
func (e *Editor) HasUnsavedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// BeginDrag records the active item at drag-start
func (e *Editor) BeginDrag(photoID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOfLocked(photoID) < 0 {
		return ErrUnknownPhoto
	}
	e.dragging = photoID
	return nil
}

// CancelDrag clears the active item without moving anything
func (e *Editor) CancelDrag() {
	e.mu.Lock()
	e.dragging = uuid.Nil
	e.mu.Unlock()
}

// Drop completes the drag onto the target index. Dropping on the source
// position is a no-op. The new arrangement applies locally only; Save
// persists it.
func (e *Editor) Drop(targetIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dragging == uuid.Nil {
		return ErrNoActiveDrag
	}
	from := e.indexOfLocked(e.dragging)
	e.dragging = uuid.Nil
	if from < 0 {
		return ErrUnknownPhoto
	}
	if targetIndex == from {
		return nil
	}

	return e.moveLocked(from, targetIndex)
}

// Move relocates the element at from to position to, as a keyboard-driven
// alternative to drag and drop.
func (e *Editor) Move(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveLocked(from, to)
}

func (e *Editor) moveLocked(from, to int) error {
	order := make([]uuid.UUID, len(e.photos))
	byID := make(map[uuid.UUID]*photo.Photo, len(e.photos))
	for i, p := range e.photos {
		order[i] = p.ID
		byID[p.ID] = p
	}

	ranks, err := photo.ComputeRanks(order, from, to)
	if err != nil {
		return err
	}

	next := make([]*photo.Photo, len(ranks))
	for _, r := range ranks {
		p := byID[r.ID]
		p.SortOrder = r.SortOrder
		next[r.SortOrder] = p
	}
	e.photos = next
	e.dirty = true
	return nil
}

// ToggleVisibility flips the flag locally and queues it for the next Save
func (e *Editor) ToggleVisibility(photoID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOfLocked(photoID)
	if i < 0 {
		return ErrUnknownPhoto
	}

	e.photos[i].IsVisible = !e.photos[i].IsVisible
	e.pendingVisibility[photoID] = e.photos[i].IsVisible
	e.dirty = true
	return nil
}

// SetCaption persists immediately and patches the local copy on success
func (e *Editor) SetCaption(ctx context.Context, photoID uuid.UUID, caption string) error {
	e.mu.Lock()
	if e.indexOfLocked(photoID) < 0 {
		e.mu.Unlock()
		return ErrUnknownPhoto
	}
	e.mu.Unlock()

	if err := e.client.SetCaption(ctx, e.profileID, photoID, caption); err != nil {
		return err
	}

	e.mu.Lock()
	if i := e.indexOfLocked(photoID); i >= 0 {
		if caption == "" {
			e.photos[i].Caption = nil
		} else {
			c := caption
			e.photos[i].Caption = &c
		}
	}
	e.mu.Unlock()
	return nil
}

// Save flushes the pending reorder and visibility changes in one round
// trip. A save racing another save for the same owner could silently
// overwrite its rank assignment, so concurrent saves are rejected with
// ErrSaveInFlight. On success the local copy is replaced by the server
// response; on any failure local changes are discarded and refetched.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	if !e.dirty {
		e.mu.Unlock()
		return nil
	}
	e.saving = true

	ids := make([]uuid.UUID, len(e.photos))
	for i, p := range e.photos {
		ids[i] = p.ID
	}
	visibility := make(map[uuid.UUID]bool, len(e.pendingVisibility))
	for id, v := range e.pendingVisibility {
		visibility[id] = v
	}
	e.mu.Unlock()

	err := e.flush(ctx, ids, visibility)

	e.mu.Lock()
	e.saving = false
	e.mu.Unlock()

	// Success or failure, the server is now the truth
	if loadErr := e.Load(ctx); err == nil && loadErr != nil {
		return loadErr
	}
	return err
}

func (e *Editor) flush(ctx context.Context, ids []uuid.UUID, visibility map[uuid.UUID]bool) error {
	if err := e.client.Reorder(ctx, e.profileID, ids); err != nil {
		return err
	}
	for id, visible := range visibility {
		if err := e.client.SetVisibility(ctx, e.profileID, id, visible); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) indexOfLocked(photoID uuid.UUID) int {
	for i, p := range e.photos {
		if p.ID == photoID {
			return i
		}
	}
	return -1
}
