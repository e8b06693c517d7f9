package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/ratiba/core"
)

var (
	// errors
	ErrNotFound     = errors.New("calendar not found")
	ErrTermNotFound = errors.New("term not found")
	ErrNameExists   = errors.New("a calendar with this name already exists")
	ErrTermExists   = errors.New("a term with this name already exists in this calendar")
	// ErrNoCalendars signals the "no data" state: nothing can be rendered
	// or exported until an admin creates at least one calendar.
	ErrNoCalendars = errors.New("no calendars have been created yet")
)

type (
	Repository interface {
		CheckCalendarNameUniqueness(ctx context.Context, name string, excluded ...Calendar) error
		CreateCalendar(ctx context.Context, cal Calendar) (Calendar, error)
		QueryAllCalendars(ctx context.Context) ([]Calendar, error)
		GetCalendarByID(ctx context.Context, id string) (Calendar, error)
		UpdateCalendar(ctx context.Context, cal Calendar) (Calendar, error)
		// DeleteCalendar removes the calendar together with every term and
		// event scoped to it, atomically. No orphans may survive.
		DeleteCalendar(ctx context.Context, id string) error

		CheckTermNameUniqueness(ctx context.Context, calendarID, name string, excluded ...Term) error
		CreateTerm(ctx context.Context, term Term) (Term, error)
		QueryTermsByCalendar(ctx context.Context, calendarID string) ([]Term, error)
		GetTermByID(ctx context.Context, id string) (Term, error)
		UpdateTerm(ctx context.Context, term Term) (Term, error)
		DeleteTerm(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkCalendarNameUniqueness(name string, excluded ...Calendar) error {
	if err := svc.repo.CheckCalendarNameUniqueness(context.Background(), name, excluded...); err != nil {
		if err == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) checkTermNameUniqueness(calendarID, name string, excluded ...Term) error {
	if err := svc.repo.CheckTermNameUniqueness(context.Background(), calendarID, name, excluded...); err != nil {
		if err == ErrTermExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) CreateCalendar(ctx context.Context, nc NewCalendar) (Calendar, error) {
	now := time.Now().UTC()
	cal := Calendar{
		Name:        nc.Name,
		Description: nc.Description,
		Level:       nc.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCalendar(ctx, cal)
}

func (svc *Service) QueryAllCalendars(ctx context.Context) ([]Calendar, error) {
	return svc.repo.QueryAllCalendars(ctx)
}

func (svc *Service) GetCalendarByID(ctx context.Context, id string) (Calendar, error) {
	return svc.repo.GetCalendarByID(ctx, id)
}

func (svc *Service) UpdateCalendar(ctx context.Context, id string, uc UpdateCalendar) (Calendar, error) {
	cal, err := svc.repo.GetCalendarByID(ctx, id)
	if err != nil {
		return Calendar{}, err
	}
	if uc.Name != "" {
		cal.Name = uc.Name
	}
	if uc.Description != "" {
		cal.Description = uc.Description
	}
	if uc.Level != "" {
		cal.Level = uc.Level
	}
	cal.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCalendar(ctx, cal)
}

func (svc *Service) DeleteCalendar(ctx context.Context, id string) error {
	return svc.repo.DeleteCalendar(ctx, id)
}

// MustAny returns ErrNoCalendars when no calendar exists yet.
func (svc *Service) MustAny(ctx context.Context) error {
	cals, err := svc.repo.QueryAllCalendars(ctx)
	if err != nil {
		return err
	}
	if len(cals) == 0 {
		return ErrNoCalendars
	}
	return nil
}

func (svc *Service) CreateTerm(ctx context.Context, nt NewTerm) (Term, error) {
	if _, err := svc.repo.GetCalendarByID(ctx, nt.CalendarID); err != nil {
		return Term{}, err
	}
	now := time.Now().UTC()
	term := Term{
		CalendarID: nt.CalendarID,
		Name:       nt.Name,
		Start:      nt.Start,
		End:        nt.End,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateTerm(ctx, term)
}

func (svc *Service) QueryTermsByCalendar(ctx context.Context, calendarID string) ([]Term, error) {
	return svc.repo.QueryTermsByCalendar(ctx, calendarID)
}

func (svc *Service) GetTermByID(ctx context.Context, id string) (Term, error) {
	return svc.repo.GetTermByID(ctx, id)
}

func (svc *Service) UpdateTerm(ctx context.Context, id string, ut UpdateTerm) (Term, error) {
	term, err := svc.repo.GetTermByID(ctx, id)
	if err != nil {
		return Term{}, err
	}
	if ut.Name != "" {
		term.Name = ut.Name
	}
	if !ut.Start.IsZero() {
		term.Start = ut.Start
	}
	if !ut.End.IsZero() {
		term.End = ut.End
	}
	term.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTerm(ctx, term)
}

func (svc *Service) DeleteTerm(ctx context.Context, id string) error {
	return svc.repo.DeleteTerm(ctx, id)
}
