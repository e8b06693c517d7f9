// Package schedule is the day reconciliation engine: it expands typed,
// possibly multi-day events into per-day buckets, resolves a single display
// category per day by fixed priority, and lays out Monday-first month grids.
// Everything here is a pure function of its inputs; callers may invoke the
// same primitive repeatedly (per visible month, per export quarter) and get
// identical output.
package schedule

import (
	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/event"
)

// categoryPriority is the fixed resolution order when several event types
// share a day. A holiday always wins over a meeting, and so on.
var categoryPriority = []event.Type{
	event.TypeHoliday,
	event.TypeMeeting,
	event.TypeGeneric,
	event.TypeClass,
}

// DayIndex maps a calendar day to the events covering it, in input order.
// It is derived state: rebuilt on every query, never cached across writes.
type DayIndex map[core.Date][]event.Event

// BuildDayIndex expands each event into every day of its inclusive
// [Start, End] range. An event spanning N days produces N bucket entries:
// a 10-day holiday must render on all 10 days.
func BuildDayIndex(events []event.Event) DayIndex {
	idx := make(DayIndex)
	for _, evt := range events {
		for day := evt.Start; !day.After(evt.End.Time); day = day.AddDays(1) {
			idx[day] = append(idx[day], evt)
		}
	}
	return idx
}

// Resolve picks the single display category for a day: the first type of
// the priority list present in the day's bucket. ok is false for days with
// no events (default/background rendering).
func (idx DayIndex) Resolve(day core.Date) (category event.Type, ok bool) {
	bucket := idx[day]
	if len(bucket) == 0 {
		return "", false
	}
	for _, typ := range categoryPriority {
		for _, evt := range bucket {
			if evt.Type == typ {
				return typ, true
			}
		}
	}
	// bucket only holds known types; unreachable unless a new Type is added
	return "", false
}
