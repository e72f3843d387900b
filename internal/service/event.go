package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/storage"
	"github.com/angelofallars/crewdesk/internal/validator"
)

type EventService interface {
	// List returns the events overlapping [from, to]. A zero bound is open.
	List(ctx context.Context, from, to domain.Date) ([]*domain.Event, error)
	// Active returns today's events with the crew booked on them.
	Active(ctx context.Context) ([]*domain.ActiveEvent, error)
	Create(ctx context.Context, req CreateEventRequest) (*domain.Event, error)
	Update(ctx context.Context, id int64, req UpdateEventRequest) (*domain.Event, error)
	UploadFile(ctx context.Context, eventID int64, filename string, data []byte) (*storage.Uploaded, error)
}

type CreateEventRequest struct {
	Title     string      `json:"title" validate:"required"`
	JobID     string      `json:"job_id"`
	Level     string      `json:"level"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
	// Members are crew member IDs to book on the event.
	Members []int64 `json:"members"`
}

// UpdateEventRequest replaces only the fields that are set.
type UpdateEventRequest struct {
	Title     *string     `json:"title"`
	JobID     *string     `json:"job_id"`
	Level     *string     `json:"level"`
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
}

type eventService struct {
	Params
}

func NewEventService(params Params) EventService {
	return &eventService{Params: params}
}

func (s *eventService) List(ctx context.Context, from, to domain.Date) ([]*domain.Event, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ierr.NewErrorf("event range %s..%s is inverted", from, to).
			WithHint("The start date must not be after the end date.").
			Mark(ierr.ErrValidation)
	}
	return s.Stores.Events.List(ctx, domain.EventFilter{
		EndsOnOrAfter:    from,
		StartsOnOrBefore: to,
	})
}

func (s *eventService) Active(ctx context.Context) ([]*domain.ActiveEvent, error) {
	today := s.today()
	events, err := s.Stores.Events.List(ctx, domain.EventFilter{
		EndsOnOrAfter:    today,
		StartsOnOrBefore: today,
	})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []*domain.ActiveEvent{}, nil
	}

	links, err := s.Stores.EventCrew.List(ctx, domain.EventCrewFilter{
		EventIDs: lo.Map(events, func(e *domain.Event, _ int) int64 { return e.ID }),
	})
	if err != nil {
		return nil, err
	}

	var crewByID map[int64]*domain.CrewMember
	if len(links) > 0 {
		members, err := s.Stores.Crew.List(ctx)
		if err != nil {
			return nil, err
		}
		crewByID = lo.KeyBy(members, func(m *domain.CrewMember) int64 { return m.ID })
	}
	linksByEvent := lo.GroupBy(links, func(l *domain.EventCrew) int64 { return l.EventID })

	return lo.Map(events, func(e *domain.Event, _ int) *domain.ActiveEvent {
		crew := lo.FilterMap(linksByEvent[e.ID], func(l *domain.EventCrew, _ int) (*domain.CrewMember, bool) {
			m, ok := crewByID[l.CrewMemberID]
			return m, ok
		})
		return &domain.ActiveEvent{
			Event:      e,
			Crew:       crew,
			CurrentDay: e.DayLabel(today),
		}
	}), nil
}

func (s *eventService) Create(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if err := validateEventDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	members := lo.Uniq(req.Members)
	if len(members) > 0 {
		crew, err := s.Stores.Crew.List(ctx)
		if err != nil {
			return nil, err
		}
		known := lo.Map(crew, func(m *domain.CrewMember, _ int) int64 { return m.ID })
		if missing, _ := lo.Difference(members, known); len(missing) > 0 {
			return nil, ierr.NewErrorf("unknown crew members %v", missing).
				WithHintf("Crew members %v do not exist.", missing).
				Mark(ierr.ErrNotFound)
		}
	}

	event, err := s.Stores.Events.Create(ctx, &domain.Event{
		Title:     strings.TrimSpace(req.Title),
		JobID:     req.JobID,
		Level:     req.Level,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return event, nil
	}

	links := lo.Map(members, func(id int64, _ int) *domain.EventCrew {
		return &domain.EventCrew{EventID: event.ID, CrewMemberID: id}
	})
	if err := s.Stores.EventCrew.CreateMany(ctx, links); err != nil {
		s.Logger.Errorw("event created without crew", "event_id", event.ID, "error", err)
		return nil, ierr.Supersede(err).
			WithHintf("Event %d was created but its crew could not be assigned.", event.ID).
			Mark(ierr.ErrDatabase)
	}

	orders := lo.Map(members, func(id int64, _ int) *domain.JobOrder {
		return &domain.JobOrder{EventID: event.ID, CrewID: id}
	})
	if err := s.Stores.JobOrders.CreateMany(ctx, orders); err != nil {
		s.Logger.Errorw("event created without job orders", "event_id", event.ID, "error", err)
		return nil, ierr.Supersede(err).
			WithHintf("Event %d was created but its job orders could not be created.", event.ID).
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("event created", "event_id", event.ID, "members", len(members))
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id int64, req UpdateEventRequest) (*domain.Event, error) {
	event, err := s.Stores.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.JobID != nil {
		event.JobID = *req.JobID
	}
	if req.Level != nil {
		event.Level = *req.Level
	}
	if !req.StartDate.IsZero() {
		event.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		event.EndDate = req.EndDate
	}

	if event.Title == "" {
		return nil, ierr.NewError("event title is empty").
			WithHint("Please enter an event title.").
			Mark(ierr.ErrValidation)
	}
	if err := validateEventDates(event.StartDate, event.EndDate); err != nil {
		return nil, err
	}

	if err := s.Stores.Events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UploadFile(ctx context.Context, eventID int64, filename string, data []byte) (*storage.Uploaded, error) {
	if len(data) == 0 {
		return nil, ierr.NewError("empty upload").
			WithHint("Please choose a file to upload.").
			Mark(ierr.ErrValidation)
	}
	if s.Storage == nil {
		return nil, ierr.NewError("object storage is disabled").
			WithHint("File uploads are not configured on this server.").
			Mark(ierr.ErrSystem)
	}

	if _, err := s.Stores.Events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	ext := storage.Extension(data, path.Ext(filename))
	key := fmt.Sprintf("%d/%s", eventID, uuid.NewString())
	if ext != "" {
		key += "." + ext
	}

	uploaded, err := s.Storage.Upload(ctx, storage.Object{
		Bucket: s.Config.Storage.FilesBucket,
		Key:    key,
		Data:   data,
	})
	if err != nil {
		s.Logger.Errorw("event file upload failed", "event_id", eventID, "key", key, "error", err)
		return nil, err
	}

	s.Logger.Infow("event file uploaded", "event_id", eventID, "key", key, "content_type", uploaded.ContentType)
	return uploaded, nil
}

func validateEventDates(start, end domain.Date) error {
	if start.IsZero() || end.IsZero() {
		return ierr.NewError("event is missing a date").
			WithHint("Please select both start and end dates.").
			Mark(ierr.ErrValidation)
	}
	if start.After(end) {
		return ierr.NewErrorf("event starts %s after it ends %s", start, end).
			WithHint("The start date must not be after the end date.").
			Mark(ierr.ErrValidation)
	}
	return nil
}
