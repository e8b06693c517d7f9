package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/event"
)

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

type eventRow struct {
	ID          string      `db:"id"`
	CalendarID  null.String `db:"calendar_id"`
	Start       core.Date   `db:"start_date"`
	End         core.Date   `db:"end_date"`
	Type        string      `db:"type"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r eventRow) event() event.Event {
	return event.Event{
		ID:          r.ID,
		CalendarID:  r.CalendarID,
		Start:       r.Start,
		End:         r.End,
		Type:        event.Type(r.Type),
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	evt.ID = uuid.New().String()
	q := `INSERT INTO events (id, calendar_id, start_date, end_date, type, title, description, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.db.ExecContext(ctx, q,
		evt.ID, evt.CalendarID, evt.Start, evt.End, evt.Type, evt.Title, evt.Description, evt.CreatedAt, evt.UpdatedAt)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return evt, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	var row eventRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM events WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting event by id")
	}
	return row.event(), nil
}

func (repo *eventRepository) FilterEvents(ctx context.Context, filter event.QueryFilter) ([]event.Event, error) {
	// calendar_id = $1 inherently drops legacy NULL-calendar rows
	q := `SELECT * FROM events WHERE calendar_id = $1`
	args := []interface{}{filter.CalendarID}

	if !filter.From.IsZero() && !filter.To.IsZero() {
		// closed-interval overlap: partial overlap qualifies
		q += ` AND start_date <= $2 AND end_date >= $3`
		args = append(args, filter.To, filter.From)
	}
	q += ` ORDER BY start_date, created_at`

	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.event())
	}
	return events, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	q := `UPDATE events SET start_date = $2, end_date = $3, type = $4, title = $5, description = $6, updated_at = $7
	      WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q, evt.ID, evt.Start, evt.End, evt.Type, evt.Title, evt.Description, evt.UpdatedAt)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return evt, nil
}

func (repo *eventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM events WHERE id = ANY($1)`, pqStringArray(ids))
	if err != nil {
		return errors.Wrap(err, "deleting events")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.ErrNotFound
	}
	return nil
}
