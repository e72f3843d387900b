package service

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/validator"
)

type JobOrderService interface {
	// List returns the crew member's job orders with their events.
	List(ctx context.Context, crewID int64) ([]*CrewJobOrder, error)
	// SaveAll applies every edit in one write, or none of them.
	SaveAll(ctx context.Context, crewID int64, edits []domain.JobOrderEdit) ([]*domain.JobOrder, error)
}

// CrewJobOrder is a job order shown next to the event it belongs to. Event
// is nil when the event no longer exists.
type CrewJobOrder struct {
	*domain.JobOrder
	Event *domain.Event `json:"event,omitempty"`
}

type jobOrderService struct {
	Params
}

func NewJobOrderService(params Params) JobOrderService {
	return &jobOrderService{Params: params}
}

func (s *jobOrderService) List(ctx context.Context, crewID int64) ([]*CrewJobOrder, error) {
	if _, err := s.Stores.Crew.Get(ctx, crewID); err != nil {
		return nil, err
	}

	orders, err := s.Stores.JobOrders.ListByCrew(ctx, crewID)
	if err != nil {
		return nil, err
	}

	eventsByID := map[int64]*domain.Event{}
	if eventIDs := lo.Uniq(lo.Map(orders, func(o *domain.JobOrder, _ int) int64 { return o.EventID })); len(eventIDs) > 0 {
		events, err := s.Stores.Events.List(ctx, domain.EventFilter{IDs: eventIDs})
		if err != nil {
			return nil, err
		}
		eventsByID = lo.KeyBy(events, func(e *domain.Event) int64 { return e.ID })
	}

	return lo.Map(orders, func(o *domain.JobOrder, _ int) *CrewJobOrder {
		return &CrewJobOrder{JobOrder: o, Event: eventsByID[o.EventID]}
	}), nil
}

func (s *jobOrderService) SaveAll(ctx context.Context, crewID int64, edits []domain.JobOrderEdit) ([]*domain.JobOrder, error) {
	if len(edits) == 0 {
		return nil, ierr.NewError("no job order edits").
			WithHint("There are no changes to save.").
			Mark(ierr.ErrValidation)
	}
	if err := s.validateEdits(edits); err != nil {
		return nil, err
	}

	owned, err := s.Stores.JobOrders.ListByCrew(ctx, crewID)
	if err != nil {
		return nil, err
	}
	ownedByID := lo.KeyBy(owned, func(o *domain.JobOrder) int64 { return o.ID })

	merged := make([]*domain.JobOrder, 0, len(edits))
	for _, edit := range edits {
		current, ok := ownedByID[edit.ID]
		if !ok {
			return nil, ierr.NewErrorf("job order %d does not belong to crew member %d", edit.ID, crewID).
				WithHintf("Job order %d was not found for this crew member.", edit.ID).
				Mark(ierr.ErrNotFound)
		}

		updated := *current
		updated.Rate = edit.Rate
		updated.Unit = edit.Unit
		updated.Currency = strings.ToUpper(strings.TrimSpace(edit.Currency))
		if updated.Currency == "" {
			updated.Currency = s.defaultCurrency()
		}
		merged = append(merged, &updated)
	}

	if err := s.Stores.JobOrders.UpsertMany(ctx, merged); err != nil {
		s.Logger.Errorw("failed to save job orders", "crew_id", crewID, "count", len(merged), "error", err)
		return nil, err
	}

	s.Logger.Infow("job orders saved", "crew_id", crewID, "count", len(merged))
	return merged, nil
}

func (s *jobOrderService) validateEdits(edits []domain.JobOrderEdit) error {
	seen := make(map[int64]struct{}, len(edits))
	for _, edit := range edits {
		if err := validator.ValidateRequest(edit); err != nil {
			return err
		}
		if edit.Rate.IsNegative() {
			return ierr.NewErrorf("job order %d has negative rate %s", edit.ID, edit.Rate).
				WithHint("Rates cannot be negative.").
				Mark(ierr.ErrValidation)
		}
		if !edit.Unit.Valid() {
			return ierr.NewErrorf("job order %d has unknown unit %d", edit.ID, edit.Unit).
				WithHint("Choose a daily, weekly or monthly unit.").
				Mark(ierr.ErrValidation)
		}
		if _, dup := seen[edit.ID]; dup {
			return ierr.NewErrorf("job order %d edited twice", edit.ID).
				WithHint("Each job order can only be edited once per save.").
				Mark(ierr.ErrValidation)
		}
		seen[edit.ID] = struct{}{}
	}
	return nil
}
