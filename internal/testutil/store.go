// Package testutil holds in-memory fakes of the external collaborators.
package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

// InMemoryStore implements every domain repository over maps. Calls counts
// each repository method invocation by name; FailOn makes the named method
// return a database error.
type InMemoryStore struct {
	mu sync.Mutex

	crew      map[int64]*domain.CrewMember
	events    map[int64]*domain.Event
	eventCrew []*domain.EventCrew
	jobOrders map[int64]*domain.JobOrder
	invoices  map[int64]*domain.Invoice
	nextID    int64

	Calls  map[string]int
	FailOn map[string]error
}

func NewInMemoryStore() *InMemoryStore {
	s := &InMemoryStore{}
	s.Clear()
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crew = map[int64]*domain.CrewMember{}
	s.events = map[int64]*domain.Event{}
	s.eventCrew = nil
	s.jobOrders = map[int64]*domain.JobOrder{}
	s.invoices = map[int64]*domain.Invoice{}
	s.nextID = 1000
	s.Calls = map[string]int{}
	s.FailOn = map[string]error{}
}

// Stores exposes s through the repository interfaces.
func (s *InMemoryStore) Stores() *domain.Stores {
	return &domain.Stores{
		Crew:      crewRepo{s},
		Events:    eventRepo{s},
		EventCrew: eventCrewRepo{s},
		JobOrders: jobOrderRepo{s},
		Invoices:  invoiceRepo{s},
	}
}

// TotalCalls is the number of repository calls made so far.
func (s *InMemoryStore) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Sum(lo.Values(s.Calls))
}

// Fail makes op return a database error until cleared.
func (s *InMemoryStore) Fail(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FailOn[op] = ierr.NewErrorf("injected failure in %s", op).
		WithHint("The data store request failed. Please try again.").
		Mark(ierr.ErrDatabase)
}

// enter records op and returns the injected failure, if any. Callers hold
// no lock.
func (s *InMemoryStore) enter(op string) error {
	s.mu.Lock()
	s.Calls[op]++
	err := s.FailOn[op]
	s.mu.Unlock()
	return err
}

func (s *InMemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// Seed helpers keep the given IDs.

func (s *InMemoryStore) AddCrew(members ...*domain.CrewMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		c := *m
		s.crew[m.ID] = &c
	}
}

func (s *InMemoryStore) AddEvents(events ...*domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		c := *e
		s.events[e.ID] = &c
	}
}

func (s *InMemoryStore) AddEventCrew(links ...*domain.EventCrew) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range links {
		c := *l
		s.eventCrew = append(s.eventCrew, &c)
	}
}

func (s *InMemoryStore) AddJobOrders(orders ...*domain.JobOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		c := *o
		s.jobOrders[o.ID] = &c
	}
}

func (s *InMemoryStore) JobOrder(id int64) *domain.JobOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.jobOrders[id]; ok {
		c := *o
		return &c
	}
	return nil
}

func (s *InMemoryStore) AllJobOrders() []*domain.JobOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopies(s.jobOrders, func(o *domain.JobOrder) int64 { return o.ID })
}

func (s *InMemoryStore) AllEventCrew() []*domain.EventCrew {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.eventCrew)
}

func (s *InMemoryStore) Invoices() []*domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopies(s.invoices, func(i *domain.Invoice) int64 { return i.ID })
}

func sortedCopies[T any](m map[int64]*T, id func(*T) int64) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		c := *v
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

func notFound(entity string, id int64) error {
	return ierr.NewErrorf("%s %d not found", entity, id).
		WithHintf("The requested %s does not exist.", entity).
		Mark(ierr.ErrNotFound)
}

type crewRepo struct{ s *InMemoryStore }

func (r crewRepo) List(_ context.Context) ([]*domain.CrewMember, error) {
	if err := r.s.enter("crew.list"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedCopies(r.s.crew, func(m *domain.CrewMember) int64 { return m.ID }), nil
}

func (r crewRepo) Get(_ context.Context, id int64) (*domain.CrewMember, error) {
	if err := r.s.enter("crew.get"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.crew[id]
	if !ok {
		return nil, notFound("crew member", id)
	}
	c := *m
	return &c, nil
}

func (r crewRepo) Create(_ context.Context, m *domain.CrewMember) (*domain.CrewMember, error) {
	if err := r.s.enter("crew.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *m
	c.ID = r.s.id()
	r.s.crew[c.ID] = &c
	out := c
	return &out, nil
}

type eventRepo struct{ s *InMemoryStore }

func (r eventRepo) List(_ context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	if err := r.s.enter("events.list"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := sortedCopies(r.s.events, func(e *domain.Event) int64 { return e.ID })
	return lo.Filter(all, func(e *domain.Event, _ int) bool {
		if f.IDs != nil && !slices.Contains(f.IDs, e.ID) {
			return false
		}
		if !f.EndsOnOrAfter.IsZero() && e.EndDate.Before(f.EndsOnOrAfter) {
			return false
		}
		if !f.StartsOnOrBefore.IsZero() && e.StartDate.After(f.StartsOnOrBefore) {
			return false
		}
		return true
	}), nil
}

func (r eventRepo) Get(_ context.Context, id int64) (*domain.Event, error) {
	if err := r.s.enter("events.get"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, notFound("event", id)
	}
	c := *e
	return &c, nil
}

func (r eventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if err := r.s.enter("events.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *e
	c.ID = r.s.id()
	r.s.events[c.ID] = &c
	out := c
	return &out, nil
}

func (r eventRepo) Update(_ context.Context, e *domain.Event) error {
	if err := r.s.enter("events.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.ID]; !ok {
		return notFound("event", e.ID)
	}
	c := *e
	r.s.events[e.ID] = &c
	return nil
}

type eventCrewRepo struct{ s *InMemoryStore }

func (r eventCrewRepo) List(_ context.Context, f domain.EventCrewFilter) ([]*domain.EventCrew, error) {
	if err := r.s.enter("event_crew.list"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return lo.Filter(slices.Clone(r.s.eventCrew), func(l *domain.EventCrew, _ int) bool {
		if f.EventIDs != nil && !slices.Contains(f.EventIDs, l.EventID) {
			return false
		}
		return f.CrewMemberID == 0 || l.CrewMemberID == f.CrewMemberID
	}), nil
}

func (r eventCrewRepo) CreateMany(_ context.Context, links []*domain.EventCrew) error {
	if err := r.s.enter("event_crew.create_many"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range links {
		c := *l
		r.s.eventCrew = append(r.s.eventCrew, &c)
	}
	return nil
}

type jobOrderRepo struct{ s *InMemoryStore }

func (r jobOrderRepo) ListByCrew(_ context.Context, crewID int64) ([]*domain.JobOrder, error) {
	if err := r.s.enter("job_orders.list_by_crew"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := sortedCopies(r.s.jobOrders, func(o *domain.JobOrder) int64 { return o.ID })
	return lo.Filter(all, func(o *domain.JobOrder, _ int) bool { return o.CrewID == crewID }), nil
}

func (r jobOrderRepo) CreateMany(_ context.Context, orders []*domain.JobOrder) error {
	if err := r.s.enter("job_orders.create_many"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range orders {
		c := *o
		c.ID = r.s.id()
		r.s.jobOrders[c.ID] = &c
	}
	return nil
}

func (r jobOrderRepo) UpsertMany(_ context.Context, orders []*domain.JobOrder) error {
	if err := r.s.enter("job_orders.upsert_many"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range orders {
		c := *o
		r.s.jobOrders[c.ID] = &c
	}
	return nil
}

type invoiceRepo struct{ s *InMemoryStore }

func (r invoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if err := r.s.enter("invoices.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *inv
	c.ID = r.s.id()
	r.s.invoices[c.ID] = &c
	out := c
	return &out, nil
}

func (r invoiceRepo) ListByCrew(_ context.Context, crewID int64) ([]*domain.Invoice, error) {
	if err := r.s.enter("invoices.list_by_crew"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := sortedCopies(r.s.invoices, func(i *domain.Invoice) int64 { return i.ID })
	slices.Reverse(all)
	return lo.Filter(all, func(i *domain.Invoice, _ int) bool { return i.CrewID == crewID }), nil
}
