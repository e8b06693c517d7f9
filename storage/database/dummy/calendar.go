package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/ratiba/core/calendar"
)

type calendarRepository struct {
	db  *calendarTable
	evt *eventTable
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

// NewCalendarRepository needs the event table too: deleting a calendar
// cascades over its events.
func NewCalendarRepository(db *DB) calendar.Repository {
	return &calendarRepository{db: db.calendar, evt: db.event}
}

func (repo *calendarRepository) CheckCalendarNameUniqueness(_ context.Context, name string, excluded ...calendar.Calendar) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cal := range repo.db.calendars {
		if cal.Name == name && !calendarExcluded(*cal, excluded) {
			return calendar.ErrNameExists
		}
	}
	return nil
}

func (repo *calendarRepository) CreateCalendar(_ context.Context, cal calendar.Calendar) (calendar.Calendar, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cal.ID = uuid.New().String()
	repo.db.calendars[cal.ID] = &cal
	return cal, nil
}

func (repo *calendarRepository) QueryAllCalendars(_ context.Context) ([]calendar.Calendar, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cals := make([]calendar.Calendar, 0, len(repo.db.calendars))
	for _, cal := range repo.db.calendars {
		cals = append(cals, *cal)
	}
	sort.Slice(cals, func(i, j int) bool { return cals[i].Name < cals[j].Name })
	return cals, nil
}

func (repo *calendarRepository) GetCalendarByID(_ context.Context, id string) (calendar.Calendar, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cal, ok := repo.db.calendars[id]; ok {
		return *cal, nil
	}
	return calendar.Calendar{}, calendar.ErrNotFound
}

func (repo *calendarRepository) UpdateCalendar(_ context.Context, cal calendar.Calendar) (calendar.Calendar, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.calendars[cal.ID]; !ok {
		return calendar.Calendar{}, calendar.ErrNotFound
	}
	repo.db.calendars[cal.ID] = &cal
	return cal, nil
}

func (repo *calendarRepository) DeleteCalendar(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.evt.Lock()
	defer repo.evt.Unlock()

	if _, ok := repo.db.calendars[id]; !ok {
		return calendar.ErrNotFound
	}
	delete(repo.db.calendars, id)
	for tid, term := range repo.db.terms {
		if term.CalendarID == id {
			delete(repo.db.terms, tid)
		}
	}
	for eid, evt := range repo.evt.table {
		if evt.CalendarID.Valid && evt.CalendarID.String == id {
			delete(repo.evt.table, eid)
		}
	}
	return nil
}

func (repo *calendarRepository) CheckTermNameUniqueness(_ context.Context, calendarID, name string, excluded ...calendar.Term) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, term := range repo.db.terms {
		if term.CalendarID == calendarID && term.Name == name && !termExcluded(*term, excluded) {
			return calendar.ErrTermExists
		}
	}
	return nil
}

func (repo *calendarRepository) CreateTerm(_ context.Context, term calendar.Term) (calendar.Term, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	term.ID = uuid.New().String()
	repo.db.terms[term.ID] = &term
	return term, nil
}

func (repo *calendarRepository) QueryTermsByCalendar(_ context.Context, calendarID string) ([]calendar.Term, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	terms := make([]calendar.Term, 0)
	for _, term := range repo.db.terms {
		if term.CalendarID == calendarID {
			terms = append(terms, *term)
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Name < terms[j].Name })
	return terms, nil
}

func (repo *calendarRepository) GetTermByID(_ context.Context, id string) (calendar.Term, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if term, ok := repo.db.terms[id]; ok {
		return *term, nil
	}
	return calendar.Term{}, calendar.ErrTermNotFound
}

func (repo *calendarRepository) UpdateTerm(_ context.Context, term calendar.Term) (calendar.Term, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.terms[term.ID]; !ok {
		return calendar.Term{}, calendar.ErrTermNotFound
	}
	repo.db.terms[term.ID] = &term
	return term, nil
}

func (repo *calendarRepository) DeleteTerm(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.terms[id]; !ok {
		return calendar.ErrTermNotFound
	}
	delete(repo.db.terms, id)
	return nil
}

func calendarExcluded(cal calendar.Calendar, excluded []calendar.Calendar) bool {
	for _, e := range excluded {
		if e.ID == cal.ID {
			return true
		}
	}
	return false
}

func termExcluded(term calendar.Term, excluded []calendar.Term) bool {
	for _, e := range excluded {
		if e.ID == term.ID {
			return true
		}
	}
	return false
}
