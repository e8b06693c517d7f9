package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/event"
)

func makeEvent(typ event.Type, title string, start core.Date, end ...core.Date) event.Event {
	evt := event.Event{
		Start: start,
		End:   start,
		Type:  typ,
		Title: title,
	}
	if len(end) > 0 {
		evt.End = end[0]
	}
	return evt
}

func Test_BuildDayIndex_coversEveryDayOfRange(t *testing.T) {
	start := core.NewDate(2026, time.March, 10)
	evt := makeEvent(event.TypeClass, "Prova bimestral", start, start.AddDays(2))

	idx := BuildDayIndex([]event.Event{evt})

	assert.Len(t, idx, 3)
	for i := 0; i < 3; i++ {
		day := start.AddDays(i)
		assert.Contains(t, idx, day, "day %s missing from index", day)
		assert.Len(t, idx[day], 1)
	}
	_, ok := idx.Resolve(start.AddDays(3))
	assert.False(t, ok)
}

func Test_DayIndex_Resolve_priority(t *testing.T) {
	day := core.NewDate(2026, time.April, 21)

	tests := []struct {
		name  string
		types []event.Type
		want  event.Type
	}{
		{"holiday beats class", []event.Type{event.TypeClass, event.TypeHoliday}, event.TypeHoliday},
		{"holiday beats meeting", []event.Type{event.TypeMeeting, event.TypeHoliday}, event.TypeHoliday},
		{"meeting beats generic", []event.Type{event.TypeGeneric, event.TypeMeeting}, event.TypeMeeting},
		{"generic beats class", []event.Type{event.TypeClass, event.TypeGeneric}, event.TypeGeneric},
		{"single class", []event.Type{event.TypeClass}, event.TypeClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]event.Event, 0, len(tt.types))
			for _, typ := range tt.types {
				events = append(events, makeEvent(typ, string(typ), day))
			}
			idx := BuildDayIndex(events)

			got, ok := idx.Resolve(day)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)

			// insertion order must not matter
			reversed := make([]event.Event, len(events))
			for i, evt := range events {
				reversed[len(events)-1-i] = evt
			}
			got, ok = BuildDayIndex(reversed).Resolve(day)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_BuildDayIndex_idempotent(t *testing.T) {
	events := []event.Event{
		makeEvent(event.TypeClass, "Aula", core.NewDate(2026, time.February, 2), core.NewDate(2026, time.February, 6)),
		makeEvent(event.TypeHoliday, "Carnaval", core.NewDate(2026, time.February, 16), core.NewDate(2026, time.February, 17)),
	}

	first := BuildDayIndex(events)
	second := BuildDayIndex(events)
	assert.True(t, reflect.DeepEqual(first, second))
}

func Test_Window_Overlaps(t *testing.T) {
	// Jan 30 - Feb 2 straddles the month boundary
	evt := makeEvent(event.TypeGeneric, "Matrículas", core.NewDate(2026, time.January, 30), core.NewDate(2026, time.February, 2))

	janWindow := Window{Start: core.NewDate(2026, time.January, 1), End: core.NewDate(2026, time.January, 31)}
	febWindow := Window{Start: core.NewDate(2026, time.February, 1), End: core.NewDate(2026, time.February, 28)}
	marWindow := Window{Start: core.NewDate(2026, time.March, 1), End: core.NewDate(2026, time.March, 31)}

	assert.True(t, janWindow.Overlaps(evt))
	assert.True(t, febWindow.Overlaps(evt))
	assert.False(t, marWindow.Overlaps(evt))

	assert.Len(t, FilterWindow([]event.Event{evt}, janWindow), 1)
	assert.Empty(t, FilterWindow([]event.Event{evt}, marWindow))
}

func Test_Window_Contains(t *testing.T) {
	w := Window{Start: core.NewDate(2026, time.February, 1), End: core.NewDate(2026, time.February, 28)}

	// both bounds are inclusive
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.True(t, w.Contains(core.NewDate(2026, time.February, 14)))
	assert.False(t, w.Contains(core.NewDate(2026, time.January, 31)))
	assert.False(t, w.Contains(core.NewDate(2026, time.March, 1)))
}

func Test_BuildMonthGrid_shape(t *testing.T) {
	// March 2026 starts on a Sunday: 6 leading placeholders, 6 week rows
	weeks := BuildMonthGrid(2026, time.March, DayIndex{})

	assert.Len(t, weeks, 6)
	for i := 0; i < 6; i++ {
		assert.True(t, weeks[0][i].Empty(), "cell %d of the first week must be a placeholder", i)
	}
	assert.Equal(t, 1, weeks[0][6].Day)
	assert.Equal(t, 31, weeks[5][1].Day)
	for i := 2; i < 7; i++ {
		assert.True(t, weeks[5][i].Empty())
	}

	// every day appears exactly once
	seen := make(map[int]int)
	for _, week := range weeks {
		for _, cell := range week {
			if !cell.Empty() {
				seen[cell.Day]++
			}
		}
	}
	assert.Len(t, seen, 31)
	for day, n := range seen {
		assert.Equal(t, 1, n, "day %d appears %d times", day, n)
	}
}

func Test_BuildMonthGrid_categories(t *testing.T) {
	day := core.NewDate(2026, time.March, 10)
	idx := BuildDayIndex([]event.Event{
		makeEvent(event.TypeClass, "Aula", day),
		makeEvent(event.TypeHoliday, "Feriado", day),
	})

	weeks := BuildMonthGrid(2026, time.March, idx)

	var cell Cell
	for _, week := range weeks {
		for _, c := range week {
			if c.Day == 10 {
				cell = c
			}
		}
	}
	assert.Equal(t, event.TypeHoliday, cell.Category)
}

func Test_Summarize(t *testing.T) {
	events := []event.Event{
		makeEvent(event.TypeHoliday, "Feriado", core.NewDate(2026, time.March, 10)),
		makeEvent(event.TypeClass, "Aula", core.NewDate(2026, time.March, 2), core.NewDate(2026, time.April, 3)),
		makeEvent(event.TypeClass, "Aula 2", core.NewDate(2026, time.May, 4)),
	}

	s := Summarize(events)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByType[event.TypeClass])
	assert.Equal(t, 1, s.ByType[event.TypeHoliday])
	// zero-filled buckets for absent types
	assert.Equal(t, 0, s.ByType[event.TypeGeneric])
	assert.Equal(t, 0, s.ByType[event.TypeMeeting])
	// multi-month events count towards their start month only
	assert.Equal(t, map[string]int{"2026-03": 2, "2026-05": 1}, s.ByMonth)
}

func Test_DominantYear(t *testing.T) {
	tests := []struct {
		name  string
		years []int
		want  int
	}{
		{"single year", []int{2026, 2026, 2026}, 2026},
		{"mode wins", []int{2025, 2026, 2026}, 2026},
		{"tie goes to the earliest", []int{2025, 2025, 2026, 2026}, 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]event.Event, 0, len(tt.years))
			for _, y := range tt.years {
				events = append(events, makeEvent(event.TypeClass, "Aula", core.NewDate(y, time.June, 1)))
			}
			assert.Equal(t, tt.want, DominantYear(events))
		})
	}
}

func Test_DominantYear_emptyFallsBackToCurrentYear(t *testing.T) {
	defer func() { nowFunc = time.Now }()
	nowFunc = func() time.Time { return time.Date(2030, time.July, 15, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, 2030, DominantYear(nil))
}

func Test_FilterYear(t *testing.T) {
	events := []event.Event{
		makeEvent(event.TypeClass, "A", core.NewDate(2025, time.December, 20)),
		makeEvent(event.TypeClass, "B", core.NewDate(2026, time.January, 5)),
		makeEvent(event.TypeClass, "C", core.NewDate(2026, time.March, 1)),
	}

	filtered := FilterYear(events, 2026)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "B", filtered[0].Title)
	assert.Equal(t, "C", filtered[1].Title)
}
