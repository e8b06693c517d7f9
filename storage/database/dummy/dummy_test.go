package dummydb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
)

func setup(t *testing.T) (*DB, calendar.Repository, event.Repository) {
	db, err := Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	return db, NewCalendarRepository(db), NewEventRepository(db)
}

func createCalendar(t *testing.T, repo calendar.Repository, name string) calendar.Calendar {
	cal, err := repo.CreateCalendar(context.Background(), calendar.Calendar{Name: name, Level: calendar.LevelMedio})
	if err != nil {
		t.Fatalf("createCalendar(): %v", err)
	}
	return cal
}

func createEvent(t *testing.T, repo event.Repository, calID null.String, title string, start core.Date) event.Event {
	evt, err := repo.CreateEvent(context.Background(), event.Event{
		CalendarID: calID,
		Start:      start,
		End:        start,
		Type:       event.TypeClass,
		Title:      title,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createEvent(): %v", err)
	}
	return evt
}

func Test_calendarRepository_DeleteCalendar_cascades(t *testing.T) {
	_, calRepo, evtRepo := setup(t)
	ctx := context.Background()

	cal := createCalendar(t, calRepo, "Calendário 2026")
	other := createCalendar(t, calRepo, "Outro")

	if _, err := calRepo.CreateTerm(ctx, calendar.Term{
		CalendarID: cal.ID,
		Name:       "1º Semestre",
		Start:      core.NewDate(2026, time.February, 1),
		End:        core.NewDate(2026, time.June, 30),
	}); err != nil {
		t.Fatalf("creating term: %v", err)
	}
	for i, title := range []string{"Aula", "Prova", "Feriado"} {
		createEvent(t, evtRepo, null.StringFrom(cal.ID), title, core.NewDate(2026, time.March, 2+i))
	}
	kept := createEvent(t, evtRepo, null.StringFrom(other.ID), "Reunião", core.NewDate(2026, time.April, 1))

	assert.NoError(t, calRepo.DeleteCalendar(ctx, cal.ID))

	_, err := calRepo.GetCalendarByID(ctx, cal.ID)
	assert.Equal(t, calendar.ErrNotFound, err)

	terms, err := calRepo.QueryTermsByCalendar(ctx, cal.ID)
	assert.NoError(t, err)
	assert.Empty(t, terms)

	events, err := evtRepo.FilterEvents(ctx, event.QueryFilter{CalendarID: cal.ID})
	assert.NoError(t, err)
	assert.Empty(t, events)

	// the sibling calendar is untouched
	events, err = evtRepo.FilterEvents(ctx, event.QueryFilter{CalendarID: other.ID})
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, kept.ID, events[0].ID)
}

func Test_eventRepository_FilterEvents(t *testing.T) {
	_, calRepo, evtRepo := setup(t)
	ctx := context.Background()

	cal := createCalendar(t, calRepo, "Calendário 2026")

	later := createEvent(t, evtRepo, null.StringFrom(cal.ID), "Depois", core.NewDate(2026, time.May, 10))
	earlier := createEvent(t, evtRepo, null.StringFrom(cal.ID), "Antes", core.NewDate(2026, time.February, 3))
	// legacy row without a calendar: never visible in scoped queries
	createEvent(t, evtRepo, null.String{}, "Órfão", core.NewDate(2026, time.February, 3))

	events, err := evtRepo.FilterEvents(ctx, event.QueryFilter{CalendarID: cal.ID})
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, earlier.ID, events[0].ID, "must be sorted by start date ascending")
	assert.Equal(t, later.ID, events[1].ID)

	// window filter keeps overlapping events only
	events, err = evtRepo.FilterEvents(ctx, event.QueryFilter{
		CalendarID: cal.ID,
		From:       core.NewDate(2026, time.May, 1),
		To:         core.NewDate(2026, time.May, 31),
	})
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, later.ID, events[0].ID)
}

func Test_eventRepository_FilterEvents_sameDayOrderedByCreation(t *testing.T) {
	_, calRepo, evtRepo := setup(t)
	ctx := context.Background()

	cal := createCalendar(t, calRepo, "Calendário 2026")
	day := core.NewDate(2026, time.March, 10)

	first, err := evtRepo.CreateEvent(ctx, event.Event{
		CalendarID: null.StringFrom(cal.ID), Start: day, End: day,
		Type: event.TypeClass, Title: "Primeiro", CreatedAt: time.Now().UTC(),
	})
	assert.NoError(t, err)
	second, err := evtRepo.CreateEvent(ctx, event.Event{
		CalendarID: null.StringFrom(cal.ID), Start: day, End: day,
		Type: event.TypeClass, Title: "Segundo", CreatedAt: time.Now().UTC().Add(time.Second),
	})
	assert.NoError(t, err)

	events, err := evtRepo.FilterEvents(ctx, event.QueryFilter{CalendarID: cal.ID})
	assert.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, []string{events[0].ID, events[1].ID})
}
