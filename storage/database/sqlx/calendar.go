package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/calendar"
)

type calendarRepository struct {
	db *sqlx.DB
}

var _ calendar.Repository = (*calendarRepository)(nil) // interface compliance check

func NewCalendarRepository(db *sqlx.DB) *calendarRepository {
	return &calendarRepository{db: db}
}

type calendarRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Level       string    `db:"level"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r calendarRow) calendar() calendar.Calendar {
	return calendar.Calendar{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Level:       calendar.Level(r.Level),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type termRow struct {
	ID         string    `db:"id"`
	CalendarID string    `db:"calendar_id"`
	Name       string    `db:"name"`
	Start      core.Date `db:"start_date"`
	End        core.Date `db:"end_date"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r termRow) term() calendar.Term {
	return calendar.Term{
		ID:         r.ID,
		CalendarID: r.CalendarID,
		Name:       r.Name,
		Start:      r.Start,
		End:        r.End,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (repo *calendarRepository) CheckCalendarNameUniqueness(ctx context.Context, name string, excluded ...calendar.Calendar) error {
	q := `SELECT EXISTS (SELECT 1 FROM calendars WHERE name = $1 AND id != ALL($2))`
	ids := make([]string, 0, len(excluded))
	for _, cal := range excluded {
		ids = append(ids, cal.ID)
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, q, name, pqStringArray(ids)); err != nil {
		return errors.Wrap(err, "checking calendar uniqueness")
	}
	if exists {
		return calendar.ErrNameExists
	}
	return nil
}

func (repo *calendarRepository) CreateCalendar(ctx context.Context, cal calendar.Calendar) (calendar.Calendar, error) {
	cal.ID = uuid.New().String()
	q := `INSERT INTO calendars (id, name, description, level, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := repo.db.ExecContext(ctx, q, cal.ID, cal.Name, cal.Description, cal.Level, cal.CreatedAt, cal.UpdatedAt); err != nil {
		return calendar.Calendar{}, errors.Wrap(err, "inserting calendar")
	}
	return cal, nil
}

func (repo *calendarRepository) QueryAllCalendars(ctx context.Context) ([]calendar.Calendar, error) {
	var rows []calendarRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM calendars ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying calendars")
	}
	cals := make([]calendar.Calendar, 0, len(rows))
	for _, r := range rows {
		cals = append(cals, r.calendar())
	}
	return cals, nil
}

func (repo *calendarRepository) GetCalendarByID(ctx context.Context, id string) (calendar.Calendar, error) {
	var row calendarRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM calendars WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return calendar.Calendar{}, calendar.ErrNotFound
		}
		return calendar.Calendar{}, errors.Wrap(err, "getting calendar by id")
	}
	return row.calendar(), nil
}

func (repo *calendarRepository) UpdateCalendar(ctx context.Context, cal calendar.Calendar) (calendar.Calendar, error) {
	q := `UPDATE calendars SET name = $2, description = $3, level = $4, updated_at = $5 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q, cal.ID, cal.Name, cal.Description, cal.Level, cal.UpdatedAt)
	if err != nil {
		return calendar.Calendar{}, errors.Wrap(err, "updating calendar")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.Calendar{}, calendar.ErrNotFound
	}
	return cal, nil
}

// DeleteCalendar removes the calendar and every term and event scoped to it
// in a single transaction; the "no orphans" invariant never relies on FK
// triggers.
func (repo *calendarRepository) DeleteCalendar(ctx context.Context, id string) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning cascade delete")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE calendar_id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting calendar events")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM terms WHERE calendar_id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting calendar terms")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM calendars WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting calendar")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "committing cascade delete")
}

func (repo *calendarRepository) CheckTermNameUniqueness(ctx context.Context, calendarID, name string, excluded ...calendar.Term) error {
	q := `SELECT EXISTS (SELECT 1 FROM terms WHERE calendar_id = $1 AND name = $2 AND id != ALL($3))`
	ids := make([]string, 0, len(excluded))
	for _, term := range excluded {
		ids = append(ids, term.ID)
	}

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, q, calendarID, name, pqStringArray(ids)); err != nil {
		return errors.Wrap(err, "checking term uniqueness")
	}
	if exists {
		return calendar.ErrTermExists
	}
	return nil
}

func (repo *calendarRepository) CreateTerm(ctx context.Context, term calendar.Term) (calendar.Term, error) {
	term.ID = uuid.New().String()
	q := `INSERT INTO terms (id, calendar_id, name, start_date, end_date, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, q, term.ID, term.CalendarID, term.Name, term.Start, term.End, term.CreatedAt, term.UpdatedAt)
	if err != nil {
		return calendar.Term{}, errors.Wrap(err, "inserting term")
	}
	return term, nil
}

func (repo *calendarRepository) QueryTermsByCalendar(ctx context.Context, calendarID string) ([]calendar.Term, error) {
	var rows []termRow
	q := `SELECT * FROM terms WHERE calendar_id = $1 ORDER BY name`
	if err := repo.db.SelectContext(ctx, &rows, q, calendarID); err != nil {
		return nil, errors.Wrap(err, "querying terms")
	}
	terms := make([]calendar.Term, 0, len(rows))
	for _, r := range rows {
		terms = append(terms, r.term())
	}
	return terms, nil
}

func (repo *calendarRepository) GetTermByID(ctx context.Context, id string) (calendar.Term, error) {
	var row termRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM terms WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return calendar.Term{}, calendar.ErrTermNotFound
		}
		return calendar.Term{}, errors.Wrap(err, "getting term by id")
	}
	return row.term(), nil
}

func (repo *calendarRepository) UpdateTerm(ctx context.Context, term calendar.Term) (calendar.Term, error) {
	q := `UPDATE terms SET name = $2, start_date = $3, end_date = $4, updated_at = $5 WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q, term.ID, term.Name, term.Start, term.End, term.UpdatedAt)
	if err != nil {
		return calendar.Term{}, errors.Wrap(err, "updating term")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.Term{}, calendar.ErrTermNotFound
	}
	return term, nil
}

func (repo *calendarRepository) DeleteTerm(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM terms WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting term")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return calendar.ErrTermNotFound
	}
	return nil
}
