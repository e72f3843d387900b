package domain

import "context"

// Implementations return errors marked with ierr.ErrNotFound for missing
// rows and ierr.ErrDatabase for store failures.

type CrewRepository interface {
	List(ctx context.Context) ([]*CrewMember, error)
	Get(ctx context.Context, id int64) (*CrewMember, error)
	Create(ctx context.Context, member *CrewMember) (*CrewMember, error)
}

type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, event *Event) (*Event, error)
	Update(ctx context.Context, event *Event) error
}

type EventCrewRepository interface {
	List(ctx context.Context, filter EventCrewFilter) ([]*EventCrew, error)
	CreateMany(ctx context.Context, links []*EventCrew) error
}

type JobOrderRepository interface {
	ListByCrew(ctx context.Context, crewID int64) ([]*JobOrder, error)
	CreateMany(ctx context.Context, orders []*JobOrder) error
	// UpsertMany writes all orders in one request/transaction: either all
	// are stored or none are.
	UpsertMany(ctx context.Context, orders []*JobOrder) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) (*Invoice, error)
	ListByCrew(ctx context.Context, crewID int64) ([]*Invoice, error)
}

// Stores groups the repositories a service layer needs.
type Stores struct {
	Crew      CrewRepository
	Events    EventRepository
	EventCrew EventCrewRepository
	JobOrders JobOrderRepository
	Invoices  InvoiceRepository
}
