package engagement

import (
	"github.com/google/uuid"
)

// ViewState is the per-element view detection state.
// Transitions: Unobserved -> Observing -> Viewed (terminal).
type ViewState int

const (
	Unobserved ViewState = iota
	Observing
	Viewed
)

// DefaultViewThreshold is the visible fraction that promotes Observing to
// Viewed: half the element's area in the viewport.
const DefaultViewThreshold = 0.5

// ViewObserver drives the view detection state machine for rendered photo
// elements. The UI feeds it visibility fractions from an intersection-style
// observer; when an element crosses the threshold the callback fires once
// and observation for that element stops.
type ViewObserver struct {
	threshold float64
	states    map[uuid.UUID]ViewState
	onViewed  func(photoID uuid.UUID)
}

// NewViewObserver creates a view observer. threshold <= 0 falls back to the
// default. onViewed is invoked at most once per photo.
func NewViewObserver(threshold float64, onViewed func(photoID uuid.UUID)) *ViewObserver {
	if threshold <= 0 {
		threshold = DefaultViewThreshold
	}
	return &ViewObserver{
		threshold: threshold,
		states:    make(map[uuid.UUID]ViewState),
		onViewed:  onViewed,
	}
}

// Observe starts watching an element. A no-op for elements already
// observing or viewed.
func (o *ViewObserver) Observe(photoID uuid.UUID) {
	if o.states[photoID] == Unobserved {
		o.states[photoID] = Observing
	}
}

// Report feeds the current visible fraction for an element. Returns true
// exactly when the element transitions to Viewed. A photo that scrolls in
// and out repeatedly still views at most once.
func (o *ViewObserver) Report(photoID uuid.UUID, visibleFraction float64) bool {
	if o.states[photoID] != Observing {
		return false
	}
	if visibleFraction < o.threshold {
		return false
	}

	o.states[photoID] = Viewed
	if o.onViewed != nil {
		o.onViewed(photoID)
	}
	return true
}

// Unobserve tears down observation for an element. Viewed is terminal and
// is kept so a re-rendered element does not count again.
func (o *ViewObserver) Unobserve(photoID uuid.UUID) {
	if o.states[photoID] == Observing {
		delete(o.states, photoID)
	}
}

// State returns the current state for an element
func (o *ViewObserver) State(photoID uuid.UUID) ViewState {
	return o.states[photoID]
}
