package schedule

import (
	"fmt"

	"github.com/trezcool/ratiba/core/event"
)

// Summary aggregates a window-filtered event set for the dashboard.
// Counting considers every event once, never the per-day resolution.
type Summary struct {
	Total  int                `json:"total"`
	ByType map[event.Type]int `json:"by_type"`
	// ByMonth attributes each event to the "YYYY-MM" month of its start
	// date only, even when it spans into other months. An explicit
	// simplification carried over from the original dashboard.
	ByMonth map[string]int `json:"by_month"`
}

func Summarize(events []event.Event) Summary {
	s := Summary{
		Total:   len(events),
		ByType:  make(map[event.Type]int, len(event.AllTypes)),
		ByMonth: make(map[string]int),
	}
	for _, typ := range event.AllTypes {
		s.ByType[typ] = 0
	}
	for _, evt := range events {
		s.ByType[evt.Type]++
		key := fmt.Sprintf("%04d-%02d", evt.Start.Year(), evt.Start.Month())
		s.ByMonth[key]++
	}
	return s
}
