package event

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core"
)

// Type classifies an event. The wire values are the original pt-BR labels
// and must be preserved as-is.
type Type string

const (
	TypeClass   Type = "aula"
	TypeGeneric Type = "evento"
	TypeHoliday Type = "feriado"
	TypeMeeting Type = "reunião"
)

var AllTypes = []Type{TypeClass, TypeGeneric, TypeHoliday, TypeMeeting}

func (t Type) Valid() bool {
	for _, typ := range AllTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Event is a typed, titled, inclusive date-range record. It occupies every
// calendar day in [Start, End]; End == Start for single-day events.
//
// CalendarID is optional: legacy rows predating calendar scoping carry no
// calendar and are excluded from every calendar-scoped view.
type Event struct {
	ID          string      `json:"id"`
	CalendarID  null.String `json:"calendar_id"`
	Start       core.Date   `json:"start"`
	End         core.Date   `json:"end"`
	Type        Type        `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"` // UTC
	UpdatedAt   time.Time   `json:"updated_at"` // UTC
}

// Days returns the number of calendar days the event covers (>= 1).
func (e Event) Days() int {
	return e.Start.DaysUntil(e.End) + 1
}

// InWindow reports whether the event intersects the closed interval
// [start, end]; partial overlap qualifies.
func (e Event) InWindow(start, end core.Date) bool {
	return !e.Start.After(end.Time) && !e.End.Before(start.Time)
}

// NewEvent contains information needed to create a new Event.
// CalendarID is resolved from the URL, not the payload.
type NewEvent struct {
	CalendarID  string    `json:"-"`
	Start       core.Date `json:"start" validate:"required,isodate"`
	End         core.Date `json:"end" validate:"omitempty,isodate"`
	Type        Type      `json:"type" validate:"required,eventtype"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Description = core.CleanString(ne.Description)

	if err := validate.Struct(ne); err != nil {
		return err
	}
	// an absent end date means a single-day event
	if ne.End.IsZero() {
		ne.End = ne.Start
	}
	return validateDateRange(ne.Start, ne.End)
}

// UpdateEvent defines what information may be provided to modify an existing Event.
type UpdateEvent struct {
	Start       core.Date `json:"start" validate:"omitempty,isodate"`
	End         core.Date `json:"end" validate:"omitempty,isodate"`
	Type        Type      `json:"type" validate:"omitempty,eventtype"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate, current Event) error {
	ue.Title = core.CleanString(ue.Title)
	ue.Description = core.CleanString(ue.Description)

	if err := validate.Struct(ue); err != nil {
		return err
	}

	start, end := current.Start, current.End
	if !ue.Start.IsZero() {
		start = ue.Start
	}
	if !ue.End.IsZero() {
		end = ue.End
	}
	return validateDateRange(start, end)
}

// QueryFilter applies AND operation on available fields.
// CalendarID is required: NULL-calendar legacy rows never match.
// From/To, when set, select events overlapping the closed window [From, To].
type QueryFilter struct {
	CalendarID string
	From       core.Date
	To         core.Date
}
