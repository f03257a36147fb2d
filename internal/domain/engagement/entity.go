package engagement

// EventType is one kind of engagement event
type EventType string

const (
	// EventView counts at most once per photo per viewing session
	EventView EventType = "view"
	// EventClick counts every occurrence
	EventClick EventType = "click"
	// EventExpand (lightbox open) counts every occurrence
	EventExpand EventType = "expand"
)

// Valid reports whether t is a known event type
func (t EventType) Valid() bool {
	switch t {
	case EventView, EventClick, EventExpand:
		return true
	}
	return false
}
