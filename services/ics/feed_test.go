package icssvc

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
)

var testCal = calendar.Calendar{
	ID:          "cal-1",
	Name:        "Calendário 2026",
	Description: "Calendário acadêmico do ensino médio",
	Level:       calendar.LevelMedio,
}

func Test_BuildFeed(t *testing.T) {
	events := []event.Event{
		{
			ID:         "evt-1",
			CalendarID: null.StringFrom(testCal.ID),
			Start:      core.NewDate(2026, time.February, 16),
			End:        core.NewDate(2026, time.February, 17),
			Type:       event.TypeHoliday,
			Title:      "Carnaval",
		},
		{
			ID:          "evt-2",
			CalendarID:  null.StringFrom(testCal.ID),
			Start:       core.NewDate(2026, time.March, 2),
			End:         core.NewDate(2026, time.March, 2),
			Type:        event.TypeClass,
			Title:       "Início das aulas",
			Description: "Primeiro dia letivo",
		},
	}

	feed := BuildFeed(testCal, events)

	parsed, err := ics.ParseCalendar(strings.NewReader(feed))
	assert.NoError(t, err)
	assert.Len(t, parsed.Events(), 2)

	// all-day events with an exclusive wire end date (+1 day)
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260216")
	assert.Contains(t, feed, "DTEND;VALUE=DATE:20260218")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260302")
	assert.Contains(t, feed, "DTEND;VALUE=DATE:20260303")

	assert.Contains(t, feed, "SUMMARY:Carnaval")
	assert.Contains(t, feed, "CATEGORIES:feriado")
	assert.Contains(t, feed, "DESCRIPTION:Primeiro dia letivo")
	assert.Contains(t, feed, "UID:evt-1@ratiba")
	assert.Contains(t, feed, "METHOD:PUBLISH")
}

func Test_BuildFeed_empty(t *testing.T) {
	feed := BuildFeed(testCal, nil)

	parsed, err := ics.ParseCalendar(strings.NewReader(feed))
	assert.NoError(t, err)
	assert.Empty(t, parsed.Events())
}
