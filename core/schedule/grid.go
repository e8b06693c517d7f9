package schedule

import (
	"time"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/event"
)

// Fixed pt-BR locale tables.
var (
	MonthNames = [12]string{
		"Janeiro", "Fevereiro", "Março",
		"Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro",
		"Outubro", "Novembro", "Dezembro",
	}
	WeekdayNames = [7]string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}
)

// Quarters are the fixed month groups used for export pagination:
// Jan–Mar, Apr–Jun, Jul–Sep, Oct–Dec.
var Quarters = [4][3]time.Month{
	{time.January, time.February, time.March},
	{time.April, time.May, time.June},
	{time.July, time.August, time.September},
	{time.October, time.November, time.December},
}

// Cell is one day slot in a month grid. Day == 0 marks a placeholder for a
// day outside the target month within a boundary week.
type Cell struct {
	Day      int        `json:"day"`
	Category event.Type `json:"category,omitempty"`
}

func (c Cell) Empty() bool { return c.Day == 0 }

// Week is one Monday-first grid row; always exactly 7 cells.
type Week [7]Cell

// BuildMonthGrid lays out the given month as Monday-first week rows,
// annotating each day with its resolved category from the day index.
func BuildMonthGrid(year int, month time.Month, idx DayIndex) []Week {
	first := core.NewDate(year, month, 1)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first column of the 1st: Monday=0 .. Sunday=6
	col := (int(first.Weekday()) + 6) % 7

	weeks := make([]Week, 0, 6)
	var week Week
	for day := 1; day <= daysInMonth; day++ {
		cell := Cell{Day: day}
		if cat, ok := idx.Resolve(core.NewDate(year, month, day)); ok {
			cell.Category = cat
		}
		week[col] = cell
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col != 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
