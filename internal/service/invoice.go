package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/invoice"
	"github.com/angelofallars/crewdesk/internal/pdf"
)

type InvoiceService interface {
	// Preview prices the window without storing anything.
	Preview(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*invoice.Breakdown, error)
	// Create prices the window and stores the invoice.
	Create(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*domain.Invoice, error)
	// Generate stores the invoice and renders it. No document is produced
	// when the invoice could not be stored.
	Generate(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*InvoiceDocument, error)
	List(ctx context.Context, crewID int64) ([]*domain.Invoice, error)
}

// InvoiceDocument is a rendered, stored invoice.
type InvoiceDocument struct {
	Invoice  *domain.Invoice
	FileName string
	Content  []byte
}

type invoiceService struct {
	Params
}

func NewInvoiceService(params Params) InvoiceService {
	return &invoiceService{Params: params}
}

func (s *invoiceService) Preview(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*invoice.Breakdown, error) {
	_, breakdown, err := s.calculate(ctx, crewID, w)
	return breakdown, err
}

func (s *invoiceService) Create(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*domain.Invoice, error) {
	_, inv, err := s.persist(ctx, crewID, w)
	return inv, err
}

func (s *invoiceService) Generate(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*InvoiceDocument, error) {
	crew, inv, err := s.persist(ctx, crewID, w)
	if err != nil {
		return nil, err
	}

	doc := pdf.Document{Crew: crew, Invoice: inv}
	content, err := s.Renderer.Render(doc)
	if err != nil {
		s.Logger.Errorw("failed to render invoice", "crew_id", crewID, "invoice_id", inv.ID, "error", err)
		return nil, err
	}

	return &InvoiceDocument{
		Invoice:  inv,
		FileName: doc.FileName(),
		Content:  content,
	}, nil
}

func (s *invoiceService) List(ctx context.Context, crewID int64) ([]*domain.Invoice, error) {
	if _, err := s.Stores.Crew.Get(ctx, crewID); err != nil {
		return nil, err
	}
	return s.Stores.Invoices.ListByCrew(ctx, crewID)
}

func (s *invoiceService) persist(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*domain.CrewMember, *domain.Invoice, error) {
	crew, breakdown, err := s.calculate(ctx, crewID, w)
	if err != nil {
		return nil, nil, err
	}

	created, err := s.Stores.Invoices.Create(ctx, breakdown.Invoice(crewID))
	if err != nil {
		s.Logger.Errorw("failed to store invoice", "crew_id", crewID, "error", err)
		return nil, nil, ierr.Supersede(err).
			WithHint("The invoice could not be saved, so no document was produced.").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("invoice stored",
		"crew_id", crewID,
		"invoice_id", created.ID,
		"line_items", len(created.Breakdown),
		"total", created.Total.String(),
		"currency", created.Currency,
	)
	return crew, created, nil
}

// calculate runs the read side of invoicing. The window is checked before
// any store call.
func (s *invoiceService) calculate(ctx context.Context, crewID int64, w domain.InvoiceWindow) (*domain.CrewMember, *invoice.Breakdown, error) {
	if err := invoice.ValidateWindow(w); err != nil {
		return nil, nil, err
	}

	crew, err := s.Stores.Crew.Get(ctx, crewID)
	if err != nil {
		return nil, nil, err
	}

	jobOrders, err := s.Stores.JobOrders.ListByCrew(ctx, crewID)
	if err != nil {
		return nil, nil, err
	}

	var events []*domain.Event
	eventIDs := lo.Uniq(lo.Map(jobOrders, func(j *domain.JobOrder, _ int) int64 { return j.EventID }))
	if len(eventIDs) > 0 {
		events, err = s.Stores.Events.List(ctx, domain.EventFilter{IDs: eventIDs})
		if err != nil {
			return nil, nil, err
		}
	}

	breakdown, err := invoice.Calculate(w, jobOrders, events, s.defaultCurrency())
	if err != nil {
		return nil, nil, err
	}
	return crew, breakdown, nil
}
