package schedule

import (
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/event"
)

// Window is a closed inclusive date interval, typically a term's bounds.
type Window struct {
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

func (w Window) Contains(day core.Date) bool {
	return !day.Before(w.Start.Time) && !day.After(w.End.Time)
}

// Overlaps applies the closed-interval intersection test: an event need not
// be fully contained, partial overlap qualifies.
func (w Window) Overlaps(evt event.Event) bool {
	return evt.InWindow(w.Start, w.End)
}

// FilterWindow keeps the events overlapping w, preserving order.
func FilterWindow(events []event.Event, w Window) []event.Event {
	filtered := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if w.Overlaps(evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}
