package service

import (
	"context"
	"time"

	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/pdf"
	"github.com/angelofallars/crewdesk/internal/storage"
)

// Uploader stores files and returns where they can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, obj storage.Object) (*storage.Uploaded, error)
}

// DocumentRenderer turns a generated invoice into a printable document.
type DocumentRenderer interface {
	Render(doc pdf.Document) ([]byte, error)
}

// Params holds the dependencies shared by every service. Storage may be nil
// when object storage is disabled.
type Params struct {
	Logger   *logger.Logger
	Config   *config.Configuration
	Stores   *domain.Stores
	Storage  Uploader
	Renderer DocumentRenderer
	Auth     auth.Provider

	// PlaceholderAvatar is uploaded for newly onboarded crew members.
	PlaceholderAvatar []byte

	// Now defaults to time.Now.
	Now func() time.Time
}

func (p Params) today() domain.Date {
	if p.Now != nil {
		return domain.DateOf(p.Now())
	}
	return domain.Today()
}

func (p Params) defaultCurrency() string {
	if p.Config != nil && p.Config.Invoice.DefaultCurrency != "" {
		return p.Config.Invoice.DefaultCurrency
	}
	return "AED"
}

// Services bundles the constructed services for the HTTP layer.
type Services struct {
	Crew      CrewService
	Events    EventService
	JobOrders JobOrderService
	Invoices  InvoiceService
}

func New(params Params) *Services {
	return &Services{
		Crew:      NewCrewService(params),
		Events:    NewEventService(params),
		JobOrders: NewJobOrderService(params),
		Invoices:  NewInvoiceService(params),
	}
}
