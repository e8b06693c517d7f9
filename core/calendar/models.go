package calendar

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ratiba/core"
)

// Level tags a calendar with the education level it serves.
type Level string

const (
	LevelFundamental Level = "fundamental"
	LevelMedio       Level = "medio"
	LevelTecnico     Level = "tecnico"
	LevelSuperior    Level = "superior"
)

var AllLevels = []Level{LevelFundamental, LevelMedio, LevelTecnico, LevelSuperior}

func (l Level) Valid() bool {
	for _, lvl := range AllLevels {
		if l == lvl {
			return true
		}
	}
	return false
}

// Calendar is an independently-scoped collection of terms and events,
// typically one per education level.
type Calendar struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       Level     `json:"level"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// Term is a named date-bounded window ("semester") used to filter views.
// Its name is unique within its calendar, not globally. Events are never
// linked to a term; they are filtered by date-range overlap with it.
type Term struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"calendar_id"`
	Name       string    `json:"name"`
	Start      core.Date `json:"start"`
	End        core.Date `json:"end"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewCalendar contains information needed to create a new Calendar.
type NewCalendar struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Level       Level  `json:"level" validate:"required,level"`
}

func (nc *NewCalendar) Validate(validate *validator.Validate, svc *Service) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.checkCalendarNameUniqueness(nc.Name)
}

// UpdateCalendar defines what information may be provided to modify an existing Calendar.
// Empty fields are left untouched.
type UpdateCalendar struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       Level  `json:"level" validate:"omitempty,level"`
}

func (uc *UpdateCalendar) Validate(validate *validator.Validate, svc *Service, current Calendar) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Description = core.CleanString(uc.Description)

	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.Name != "" && uc.Name != current.Name {
		return svc.checkCalendarNameUniqueness(uc.Name, current)
	}
	return nil
}

// NewTerm contains information needed to create a new Term.
// CalendarID is resolved from the URL, not the payload.
type NewTerm struct {
	CalendarID string    `json:"-"`
	Name       string    `json:"name" validate:"required"`
	Start      core.Date `json:"start" validate:"required,isodate"`
	End        core.Date `json:"end" validate:"required,isodate"`
}

func (nt *NewTerm) Validate(validate *validator.Validate, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	if err := validateDateRange(nt.Start, nt.End); err != nil {
		return err
	}
	return svc.checkTermNameUniqueness(nt.CalendarID, nt.Name)
}

// UpdateTerm defines what information may be provided to modify an existing Term.
type UpdateTerm struct {
	Name  string    `json:"name"`
	Start core.Date `json:"start" validate:"omitempty,isodate"`
	End   core.Date `json:"end" validate:"omitempty,isodate"`
}

func (ut *UpdateTerm) Validate(validate *validator.Validate, svc *Service, current Term) error {
	ut.Name = core.CleanString(ut.Name)

	if err := validate.Struct(ut); err != nil {
		return err
	}

	start, end := current.Start, current.End
	if !ut.Start.IsZero() {
		start = ut.Start
	}
	if !ut.End.IsZero() {
		end = ut.End
	}
	if err := validateDateRange(start, end); err != nil {
		return err
	}
	if ut.Name != "" && ut.Name != current.Name {
		return svc.checkTermNameUniqueness(current.CalendarID, ut.Name, current)
	}
	return nil
}
