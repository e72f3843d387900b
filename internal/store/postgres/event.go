package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const eventSelect = `
SELECT id,
       COALESCE(title, '')          AS title,
       COALESCE(job_id::text, '')   AS job_id,
       COALESCE(level::text, '')    AS level,
       start_date,
       end_date
FROM events`

type eventRepository struct {
	db *DB
}

// buildEventQuery turns filter into a rebound query and its arguments.
func buildEventQuery(filter domain.EventFilter) (string, []any, error) {
	var where []string
	var args []any

	if len(filter.IDs) > 0 {
		where = append(where, "id IN (?)")
		args = append(args, filter.IDs)
	}
	if !filter.EndsOnOrAfter.IsZero() {
		where = append(where, "end_date >= ?")
		args = append(args, filter.EndsOnOrAfter)
	}
	if !filter.StartsOnOrBefore.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, filter.StartsOnOrBefore)
	}

	query := eventSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date, id"

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []*domain.Event{}, nil
	}

	var rows []*domain.Event
	err := r.db.run(ctx, "events.list", func(ctx context.Context) error {
		query, args, err := buildEventQuery(filter)
		if err != nil {
			return err
		}
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	return rows, err
}

func (r *eventRepository) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var event domain.Event
	var missing bool
	err := r.db.run(ctx, "events.get", func(ctx context.Context) error {
		err := r.db.GetContext(ctx, &event, eventSelect+` WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			missing = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, notFound("event", id)
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	created := *e
	err := r.db.run(ctx, "events.create", func(ctx context.Context) error {
		return r.db.QueryRowxContext(ctx, `
INSERT INTO events (title, job_id, level, start_date, end_date)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
RETURNING id`,
			e.Title, e.JobID, e.Level, e.StartDate, e.EndDate,
		).Scan(&created.ID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	var affected int64
	err := r.db.run(ctx, "events.update", func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `
UPDATE events
SET title = $2, job_id = NULLIF($3, ''), level = NULLIF($4, ''), start_date = $5, end_date = $6
WHERE id = $1`,
			e.ID, e.Title, e.JobID, e.Level, e.StartDate, e.EndDate,
		)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound("event", e.ID)
	}
	return nil
}

type eventCrewRepository struct {
	db *DB
}

func (r *eventCrewRepository) List(ctx context.Context, filter domain.EventCrewFilter) ([]*domain.EventCrew, error) {
	if filter.EventIDs != nil && len(filter.EventIDs) == 0 {
		return []*domain.EventCrew{}, nil
	}

	var where []string
	var args []any
	if len(filter.EventIDs) > 0 {
		where = append(where, "event_id IN (?)")
		args = append(args, filter.EventIDs)
	}
	if filter.CrewMemberID != 0 {
		where = append(where, "crew_member_id = ?")
		args = append(args, filter.CrewMemberID)
	}
	query := `SELECT event_id, crew_member_id FROM event_crew`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	var rows []*domain.EventCrew
	err := r.db.run(ctx, "event_crew.list", func(ctx context.Context) error {
		q, a, err := sqlx.In(query, args...)
		if err != nil {
			return err
		}
		return r.db.SelectContext(ctx, &rows, r.db.Rebind(q), a...)
	})
	return rows, err
}

func (r *eventCrewRepository) CreateMany(ctx context.Context, links []*domain.EventCrew) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.inTx(ctx, "event_crew.create_many", func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO event_crew (event_id, crew_member_id) VALUES (:event_id, :crew_member_id)`,
			links,
		)
		return err
	})
}
