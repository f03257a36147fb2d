package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/modelfolio/media-api/internal/domain/photo"
)

// clientStub plays the media library backend. It applies reorders and
// visibility writes to its own copy so reloads return the committed truth.
type clientStub struct {
	photos []*photo.Photo

	reorderCalls    [][]uuid.UUID
	visibilityCalls map[uuid.UUID]bool
	captionCalls    map[uuid.UUID]string

	reorderErr error

	// When set, Reorder blocks until released is closed
	entered  chan struct{}
	released chan struct{}
}

func newClientStub(n int) *clientStub {
	s := &clientStub{
		visibilityCalls: make(map[uuid.UUID]bool),
		captionCalls:    make(map[uuid.UUID]string),
	}
	for i := 0; i < n; i++ {
		s.photos = append(s.photos, &photo.Photo{
			ID:        uuid.New(),
			SortOrder: i,
			IsVisible: true,
		})
	}
	return s
}

func (s *clientStub) List(_ context.Context, _ uuid.UUID) ([]*photo.Photo, error) {
	out := make([]*photo.Photo, len(s.photos))
	for i, p := range s.photos {
		clone := *p
		out[i] = &clone
	}
	return out, nil
}

func (s *clientStub) Reorder(_ context.Context, _ uuid.UUID, photoIDs []uuid.UUID) error {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.released
	}
	s.reorderCalls = append(s.reorderCalls, photoIDs)
	if s.reorderErr != nil {
		return s.reorderErr
	}

	byID := make(map[uuid.UUID]*photo.Photo, len(s.photos))
	for _, p := range s.photos {
		byID[p.ID] = p
	}
	next := make([]*photo.Photo, 0, len(photoIDs))
	for i, id := range photoIDs {
		p := byID[id]
		p.SortOrder = i
		next = append(next, p)
	}
	s.photos = next
	return nil
}

func (s *clientStub) SetVisibility(_ context.Context, _ uuid.UUID, photoID uuid.UUID, visible bool) error {
	s.visibilityCalls[photoID] = visible
	for _, p := range s.photos {
		if p.ID == photoID {
			p.IsVisible = visible
		}
	}
	return nil
}

func (s *clientStub) SetCaption(_ context.Context, _ uuid.UUID, photoID uuid.UUID, caption string) error {
	s.captionCalls[photoID] = caption
	return nil
}

func loadedEditor(t *testing.T, client *clientStub) *Editor {
	t.Helper()
	e := NewEditor(client, uuid.New())
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return e
}

func localOrder(e *Editor) []uuid.UUID {
	photos := e.Photos()
	out := make([]uuid.UUID, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

func TestEditor_DragThenSave(t *testing.T) {
	client := newClientStub(3)
	a, b, c := client.photos[0].ID, client.photos[1].ID, client.photos[2].ID
	e := loadedEditor(t, client)
	ctx := context.Background()

	// Drag C to the front
	if err := e.BeginDrag(c); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	if err := e.Drop(0); err != nil {
		t.Fatalf("drop: %v", err)
	}

	// Local copy rearranged, nothing written yet
	want := []uuid.UUID{c, a, b}
	got := localOrder(e)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("local position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(client.reorderCalls) != 0 {
		t.Fatal("drop must not write to the backend")
	}
	if !e.HasUnsavedChanges() {
		t.Fatal("drop should mark the editor dirty")
	}

	if err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Exactly one batched reorder carrying the full sequence
	if len(client.reorderCalls) != 1 {
		t.Fatalf("expected 1 reorder call, got %d", len(client.reorderCalls))
	}
	for i := range want {
		if client.reorderCalls[0][i] != want[i] {
			t.Fatalf("persisted position %d: expected %s, got %s", i, want[i], client.reorderCalls[0][i])
		}
	}
	if e.HasUnsavedChanges() {
		t.Error("save should clear the dirty flag")
	}
}

func TestEditor_DropOnSamePositionIsNoop(t *testing.T) {
	client := newClientStub(3)
	e := loadedEditor(t, client)

	if err := e.BeginDrag(client.photos[1].ID); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	if err := e.Drop(1); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if e.HasUnsavedChanges() {
		t.Error("dropping on the source position should not dirty the editor")
	}
}

func TestEditor_DropWithoutDrag(t *testing.T) {
	e := loadedEditor(t, newClientStub(2))
	if err := e.Drop(0); !errors.Is(err, ErrNoActiveDrag) {
		t.Fatalf("expected ErrNoActiveDrag, got %v", err)
	}
}

func TestEditor_CancelDrag(t *testing.T) {
	client := newClientStub(2)
	e := loadedEditor(t, client)

	if err := e.BeginDrag(client.photos[0].ID); err != nil {
		t.Fatalf("begin drag: %v", err)
	}
	e.CancelDrag()
	if err := e.Drop(1); !errors.Is(err, ErrNoActiveDrag) {
		t.Fatalf("expected ErrNoActiveDrag after cancel, got %v", err)
	}
	if e.HasUnsavedChanges() {
		t.Error("cancelled drag should leave the editor clean")
	}
}

func TestEditor_SaveIsSingleFlight(t *testing.T) {
	client := newClientStub(2)
	client.entered = make(chan struct{}, 1)
	client.released = make(chan struct{})
	e := loadedEditor(t, client)
	ctx := context.Background()

	if err := e.Move(0, 1); err != nil {
		t.Fatalf("move: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- e.Save(ctx) }()

	<-client.entered
	if err := e.Save(ctx); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("expected ErrSaveInFlight, got %v", err)
	}
	close(client.released)

	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
	if len(client.reorderCalls) != 1 {
		t.Fatalf("expected 1 reorder call, got %d", len(client.reorderCalls))
	}
}

func TestEditor_SaveFailureDiscardsLocalChanges(t *testing.T) {
	client := newClientStub(3)
	client.reorderErr = errors.New("list out of date")
	serverOrder := localOrderOf(client.photos)
	e := loadedEditor(t, client)

	if err := e.Move(2, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := e.Save(context.Background()); err == nil {
		t.Fatal("expected save to fail")
	}

	// Local copy snapped back to the server truth
	got := localOrder(e)
	for i := range serverOrder {
		if got[i] != serverOrder[i] {
			t.Fatalf("position %d: expected server order %s, got %s", i, serverOrder[i], got[i])
		}
	}
	if e.HasUnsavedChanges() {
		t.Error("failed save should discard pending changes")
	}
}

func TestEditor_VisibilityBatchedIntoSave(t *testing.T) {
	client := newClientStub(2)
	target := client.photos[0].ID
	e := loadedEditor(t, client)
	ctx := context.Background()

	if err := e.ToggleVisibility(target); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(client.visibilityCalls) != 0 {
		t.Fatal("toggle must not write before save")
	}

	if err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	visible, ok := client.visibilityCalls[target]
	if !ok || visible {
		t.Fatalf("expected visibility persisted as hidden, got %v ok=%v", visible, ok)
	}

	// Toggling twice before save lands on the final value
	if err := e.ToggleVisibility(target); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := e.ToggleVisibility(target); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if visible := client.visibilityCalls[target]; visible {
		t.Error("double toggle should persist the final value")
	}
}

func TestEditor_CaptionPersistsImmediately(t *testing.T) {
	client := newClientStub(1)
	target := client.photos[0].ID
	e := loadedEditor(t, client)

	if err := e.SetCaption(context.Background(), target, "editorial, paris"); err != nil {
		t.Fatalf("set caption: %v", err)
	}
	if got := client.captionCalls[target]; got != "editorial, paris" {
		t.Fatalf("expected caption written through, got %q", got)
	}
	if e.HasUnsavedChanges() {
		t.Error("caption edits do not join the save batch")
	}
}

func TestEditor_SaveWithoutChangesIsNoop(t *testing.T) {
	client := newClientStub(2)
	e := loadedEditor(t, client)

	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(client.reorderCalls) != 0 {
		t.Error("clean editor should not write on save")
	}
}

func TestEditor_UnknownPhoto(t *testing.T) {
	e := loadedEditor(t, newClientStub(1))

	if err := e.BeginDrag(uuid.New()); !errors.Is(err, ErrUnknownPhoto) {
		t.Errorf("begin drag: expected ErrUnknownPhoto, got %v", err)
	}
	if err := e.ToggleVisibility(uuid.New()); !errors.Is(err, ErrUnknownPhoto) {
		t.Errorf("toggle: expected ErrUnknownPhoto, got %v", err)
	}
	if err := e.SetCaption(context.Background(), uuid.New(), "x"); !errors.Is(err, ErrUnknownPhoto) {
		t.Errorf("caption: expected ErrUnknownPhoto, got %v", err)
	}
}

func localOrderOf(photos []*photo.Photo) []uuid.UUID {
	out := make([]uuid.UUID, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}
