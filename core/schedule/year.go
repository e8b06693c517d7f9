package schedule

import (
	"time"

	"github.com/trezcool/ratiba/core/event"
)

var nowFunc = time.Now // mockable

// DominantYear picks the single year a render pass covers: the statistical
// mode of the start-years of the visible events, ties going to the earliest
// year. With no visible events it falls back to the current year.
//
// A window spanning a year boundary therefore renders only the majority
// year's events in the grid and export. Known limitation, kept on purpose.
func DominantYear(events []event.Event) int {
	if len(events) == 0 {
		return nowFunc().UTC().Year()
	}

	counts := make(map[int]int, 2)
	for _, evt := range events {
		counts[evt.Start.Year()]++
	}

	var year, best int
	for y, n := range counts {
		if n > best || (n == best && y < year) {
			year, best = y, n
		}
	}
	return year
}

// FilterYear keeps the events starting in the given year, preserving order.
func FilterYear(events []event.Event, year int) []event.Event {
	filtered := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if evt.Start.Year() == year {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}
