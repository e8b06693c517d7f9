// Package exportsvc composes the yearly calendar document: four landscape
// pages (one per fixed quarter), each with three colored month grids and a
// chronological event listing, printable to PDF.
package exportsvc

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/schedule"
)

const (
	displayDateLayout = "02/01/2006"

	noEventsLine = "• Não há eventos para este trimestre."
)

type (
	Document struct {
		Year         int
		CalendarName string
		Level        calendar.Level
		TermName     string // empty when exporting the whole year
		Pages        [4]Page
	}

	Page struct {
		Quarter int // 1-based
		Title   string
		Months  [3]MonthBlock
		Listing []string
	}

	MonthBlock struct {
		Month time.Month
		Name  string
		Weeks []schedule.Week
	}
)

// BuildDocument lays out the export for the dominant year of the given
// (already window-filtered, start-ascending) event set. It never fails:
// an empty event set yields four pages of blank grids, each listing stating
// explicitly that there are no events.
func BuildDocument(cal calendar.Calendar, term *calendar.Term, events []event.Event) Document {
	year := schedule.DominantYear(events)
	// the grid and listings render the dominant year only
	visible := schedule.FilterYear(events, year)
	idx := schedule.BuildDayIndex(visible)

	doc := Document{
		Year:         year,
		CalendarName: cal.Name,
		Level:        cal.Level,
	}
	if term != nil {
		doc.TermName = term.Name
	}

	for qi, months := range schedule.Quarters {
		page := Page{Quarter: qi + 1}

		page.Title = fmt.Sprintf("Calendário Acadêmico – %d | Trimestre %d | %s (%s)",
			year, page.Quarter, cal.Name, cal.Level)
		if doc.TermName != "" {
			page.Title += " | " + doc.TermName
		}

		for i, month := range months {
			page.Months[i] = MonthBlock{
				Month: month,
				Name:  schedule.MonthNames[month-1],
				Weeks: schedule.BuildMonthGrid(year, month, idx),
			}
		}

		// chronological listing: events whose start month falls in this
		// quarter (input order is already start-ascending)
		for _, evt := range visible {
			if inQuarter(evt.Start.Month(), months) {
				page.Listing = append(page.Listing, formatLine(evt))
			}
		}
		if len(page.Listing) == 0 {
			page.Listing = []string{noEventsLine}
		}

		doc.Pages[qi] = page
	}
	return doc
}

func inQuarter(month time.Month, months [3]time.Month) bool {
	return month == months[0] || month == months[1] || month == months[2]
}

// formatLine renders `• <start>[ a <end>] – <type> – <title>`; the end date
// is omitted for single-day events.
func formatLine(evt event.Event) string {
	period := evt.Start.Format(displayDateLayout)
	if !evt.End.Equal(evt.Start.Time) {
		period += " a " + evt.End.Format(displayDateLayout)
	}
	return fmt.Sprintf("• %s – %s – %s", period, evt.Type, evt.Title)
}

var (
	slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

	// pt-BR diacritics folding so accented names survive slugging
	accentReplacer = strings.NewReplacer(
		"á", "a", "à", "a", "â", "a", "ã", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "ô", "o", "õ", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = accentReplacer.Replace(s)
	s = slugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Filename names the downloadable artifact: calendario_<calendar>_<term|ano>.pdf
func Filename(cal calendar.Calendar, term *calendar.Term) string {
	termPart := "ano"
	if term != nil {
		termPart = slugify(term.Name)
	}
	return fmt.Sprintf("calendario_%s_%s.pdf", slugify(cal.Name), termPart)
}
