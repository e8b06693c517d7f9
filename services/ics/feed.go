// Package icssvc serializes a calendar's events as an iCalendar feed so
// external clients (Google Calendar, Thunderbird, ...) can subscribe.
package icssvc

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
)

const prodID = "-//Ratiba//Calendario Academico//PT-BR"

// BuildFeed renders the events of one calendar as an ICS payload. Events are
// all-day; the inclusive end date becomes exclusive (+1 day) on the wire, per
// RFC 5545 DTEND semantics.
func BuildFeed(cal calendar.Calendar, events []event.Event) string {
	feed := ics.NewCalendar()
	feed.SetMethod(ics.MethodPublish)
	feed.SetProductId(prodID)
	feed.SetName(cal.Name)
	feed.SetDescription(cal.Description)

	now := time.Now().UTC()
	for _, evt := range events {
		ve := feed.AddEvent(fmt.Sprintf("%s@ratiba", evt.ID))
		ve.SetDtStampTime(now)
		ve.SetSummary(evt.Title)
		if evt.Description != "" {
			ve.SetDescription(evt.Description)
		}
		ve.SetProperty(ics.ComponentPropertyCategories, string(evt.Type))
		ve.SetAllDayStartAt(evt.Start.Time)
		ve.SetAllDayEndAt(evt.End.AddDays(1).Time)
	}
	return feed.Serialize()
}
