package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

type InvoiceServiceSuite struct {
	BaseServiceSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	s.service = NewInvoiceService(s.params)

	s.store.AddCrew(&domain.CrewMember{ID: 1, FullName: "Alex Doe", Role: "Gaffer", Status: "Active"})
	s.store.AddEvents(
		&domain.Event{ID: 10, Title: "Desert Shoot", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 10)},
		&domain.Event{ID: 11, Title: "Studio Day", StartDate: date(2024, time.February, 1), EndDate: date(2024, time.February, 5)},
	)
	s.store.AddJobOrders(
		&domain.JobOrder{ID: 100, EventID: 10, CrewID: 1, Rate: rate(100), Currency: "AED", Unit: domain.UnitDaily},
		&domain.JobOrder{ID: 101, EventID: 11, CrewID: 1, Rate: rate(500), Currency: "AED", Unit: domain.UnitDaily},
		&domain.JobOrder{ID: 102, EventID: 404, CrewID: 1, Rate: rate(900), Currency: "AED", Unit: domain.UnitDaily},
	)
}

func (s *InvoiceServiceSuite) window(start, end domain.Date) domain.InvoiceWindow {
	return domain.InvoiceWindow{Start: start, End: end}
}

func (s *InvoiceServiceSuite) TestGenerateStoresThenRenders() {
	doc, err := s.service.Generate(s.ctx, 1, s.window(date(2024, time.January, 5), date(2024, time.January, 7)))
	s.Require().NoError(err)

	s.Equal("Invoice-Alex Doe.pdf", doc.FileName)
	s.NotEmpty(doc.Content)
	s.True(doc.Invoice.Total.Equal(rate(300)))
	s.Equal("AED", doc.Invoice.Currency)
	s.Equal([]int64{100}, doc.Invoice.JobOrderIDs)
	s.Require().Len(doc.Invoice.Breakdown, 1)
	s.Equal(3, doc.Invoice.Breakdown[0].BillableDays)

	stored := s.store.Invoices()
	s.Require().Len(stored, 1)
	s.Equal(doc.Invoice.ID, stored[0].ID)
	s.Equal(1, s.renderer.Count())
	s.Equal("Alex Doe", s.renderer.Rendered[0].Crew.FullName)
}

func (s *InvoiceServiceSuite) TestMissingWindowEndMakesNoStoreCalls() {
	_, err := s.service.Generate(s.ctx, 1, domain.InvoiceWindow{Start: date(2024, time.January, 1)})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.store.TotalCalls())
	s.Zero(s.renderer.Count())
}

func (s *InvoiceServiceSuite) TestPersistenceFailureProducesNoDocument() {
	s.store.Fail("invoices.create")

	doc, err := s.service.Generate(s.ctx, 1, s.window(date(2024, time.January, 1), date(2024, time.January, 10)))
	s.Require().Error(err)
	s.Nil(doc)
	s.True(ierr.IsDatabase(err))
	s.Zero(s.renderer.Count())
	s.Empty(s.store.Invoices())
	s.Equal("The invoice could not be saved, so no document was produced.", ierr.DisplayMessage(err))
}

func (s *InvoiceServiceSuite) TestRenderFailureIsReturned() {
	s.renderer.Err = ierr.NewError("boom").Mark(ierr.ErrSystem)

	doc, err := s.service.Generate(s.ctx, 1, s.window(date(2024, time.January, 1), date(2024, time.January, 10)))
	s.Require().Error(err)
	s.Nil(doc)
	s.True(ierr.Is(err, ierr.ErrSystem))
}

func (s *InvoiceServiceSuite) TestUnknownCrewMember() {
	_, err := s.service.Generate(s.ctx, 99, s.window(date(2024, time.January, 1), date(2024, time.January, 10)))
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Zero(s.store.Calls["job_orders.list_by_crew"])
}

func (s *InvoiceServiceSuite) TestWindowWithoutOverlapGivesEmptyInvoice() {
	inv, err := s.service.Create(s.ctx, 1, s.window(date(2024, time.March, 1), date(2024, time.March, 10)))
	s.Require().NoError(err)
	s.True(inv.Total.IsZero())
	s.Empty(inv.Breakdown)
	s.Equal("AED", inv.Currency)
}

func (s *InvoiceServiceSuite) TestPreviewDoesNotPersist() {
	breakdown, err := s.service.Preview(s.ctx, 1, s.window(date(2024, time.January, 1), date(2024, time.February, 28)))
	s.Require().NoError(err)

	s.Len(breakdown.Items, 2)
	s.True(breakdown.Total.Equal(rate(1000 + 2500)))
	s.Empty(s.store.Invoices())
	s.Zero(s.store.Calls["invoices.create"])
}

func (s *InvoiceServiceSuite) TestEventsLoadedOnceByID() {
	_, err := s.service.Preview(s.ctx, 1, s.window(date(2024, time.January, 1), date(2024, time.January, 2)))
	s.Require().NoError(err)
	s.Equal(1, s.store.Calls["events.list"])
}

func (s *InvoiceServiceSuite) TestListNewestFirst() {
	w := s.window(date(2024, time.January, 1), date(2024, time.January, 2))
	first, err := s.service.Create(s.ctx, 1, w)
	s.Require().NoError(err)
	second, err := s.service.Create(s.ctx, 1, w)
	s.Require().NoError(err)

	invoices, err := s.service.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(invoices, 2)
	s.Equal(second.ID, invoices[0].ID)
	s.Equal(first.ID, invoices[1].ID)
}
