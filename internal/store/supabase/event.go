package supabase

import (
	"context"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const eventColumns = "id,title,job_id,level,start_date,end_date"

type eventRepository struct {
	c *Client
}

type eventRow struct {
	Title     string      `json:"title"`
	JobID     string      `json:"job_id,omitempty"`
	Level     string      `json:"level,omitempty"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
}

func toEventRow(e *domain.Event) eventRow {
	return eventRow{
		Title:     e.Title,
		JobID:     e.JobID,
		Level:     e.Level,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []*domain.Event{}, nil
	}

	var rows []*domain.Event
	err := r.c.run(ctx, "events.list", func(ctx context.Context) error {
		q := r.c.sb.DB.From(tableEvents).Select(eventColumns)
		if len(filter.IDs) > 0 {
			q.In("id", idStrings(filter.IDs))
		}
		if !filter.EndsOnOrAfter.IsZero() {
			q.Gte("end_date", filter.EndsOnOrAfter.String())
		}
		if !filter.StartsOnOrBefore.IsZero() {
			q.Lte("start_date", filter.StartsOnOrBefore.String())
		}
		return q.ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventRepository) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var rows []*domain.Event
	err := r.c.run(ctx, "events.get", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableEvents).
			Select(eventColumns).
			Eq("id", idString(id)).
			ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("event", id)
	}
	return rows[0], nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	var created []*domain.Event
	err := r.c.run(ctx, "events.create", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableEvents).
			Insert(toEventRow(e)).
			ExecuteWithContext(ctx, &created)
	})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, notFound("created event", 0)
	}
	return created[0], nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	var updated []*domain.Event
	err := r.c.run(ctx, "events.update", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableEvents).
			Update(toEventRow(e)).
			Eq("id", idString(e.ID)).
			ExecuteWithContext(ctx, &updated)
	})
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return notFound("event", e.ID)
	}
	return nil
}

type eventCrewRepository struct {
	c *Client
}

func (r *eventCrewRepository) List(ctx context.Context, filter domain.EventCrewFilter) ([]*domain.EventCrew, error) {
	if filter.EventIDs != nil && len(filter.EventIDs) == 0 {
		return []*domain.EventCrew{}, nil
	}

	var rows []*domain.EventCrew
	err := r.c.run(ctx, "event_crew.list", func(ctx context.Context) error {
		q := r.c.sb.DB.From(tableEventCrew).Select("event_id,crew_member_id")
		if len(filter.EventIDs) > 0 {
			q.In("event_id", idStrings(filter.EventIDs))
		}
		if filter.CrewMemberID != 0 {
			q.Eq("crew_member_id", idString(filter.CrewMemberID))
		}
		return q.ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventCrewRepository) CreateMany(ctx context.Context, links []*domain.EventCrew) error {
	if len(links) == 0 {
		return nil
	}
	var created []*domain.EventCrew
	return r.c.run(ctx, "event_crew.create_many", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableEventCrew).
			Insert(links).
			ExecuteWithContext(ctx, &created)
	})
}
