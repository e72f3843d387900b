package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

type JobOrderServiceSuite struct {
	BaseServiceSuite
	service JobOrderService
}

func TestJobOrderService(t *testing.T) {
	suite.Run(t, new(JobOrderServiceSuite))
}

func (s *JobOrderServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	s.service = NewJobOrderService(s.params)

	s.store.AddCrew(
		&domain.CrewMember{ID: 1, FullName: "Alex Doe"},
		&domain.CrewMember{ID: 2, FullName: "Sam Roe"},
	)
	s.store.AddEvents(&domain.Event{ID: 10, Title: "Desert Shoot", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 10)})
	s.store.AddJobOrders(
		&domain.JobOrder{ID: 100, EventID: 10, CrewID: 1, Rate: rate(100), Currency: "AED"},
		&domain.JobOrder{ID: 101, EventID: 77, CrewID: 1, Rate: rate(200), Currency: "AED"},
		&domain.JobOrder{ID: 200, EventID: 10, CrewID: 2, Rate: rate(300), Currency: "AED"},
	)
}

func (s *JobOrderServiceSuite) TestSaveAllWritesOnce() {
	saved, err := s.service.SaveAll(s.ctx, 1, []domain.JobOrderEdit{
		{ID: 100, Rate: rate(700), Unit: domain.UnitWeekly, Currency: "usd"},
		{ID: 101, Rate: rate(50), Unit: domain.UnitMonthly},
	})
	s.Require().NoError(err)
	s.Len(saved, 2)
	s.Equal(1, s.store.Calls["job_orders.upsert_many"])

	first := s.store.JobOrder(100)
	s.True(first.Rate.Equal(rate(700)))
	s.Equal(domain.UnitWeekly, first.Unit)
	s.Equal("USD", first.Currency)
	s.Equal(int64(10), first.EventID)

	second := s.store.JobOrder(101)
	s.Equal(domain.UnitMonthly, second.Unit)
	s.Equal("AED", second.Currency)
}

func (s *JobOrderServiceSuite) TestSaveAllRejectsForeignJobOrder() {
	_, err := s.service.SaveAll(s.ctx, 1, []domain.JobOrderEdit{
		{ID: 100, Rate: rate(1)},
		{ID: 200, Rate: rate(1)},
	})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Zero(s.store.Calls["job_orders.upsert_many"])
	s.True(s.store.JobOrder(100).Rate.Equal(rate(100)))
}

func (s *JobOrderServiceSuite) TestSaveAllValidation() {
	testCases := []struct {
		name  string
		edits []domain.JobOrderEdit
	}{
		{name: "no_edits"},
		{name: "negative_rate", edits: []domain.JobOrderEdit{{ID: 100, Rate: rate(-1)}}},
		{name: "unknown_unit", edits: []domain.JobOrderEdit{{ID: 100, Rate: rate(1), Unit: domain.Unit(9)}}},
		{name: "bad_currency", edits: []domain.JobOrderEdit{{ID: 100, Rate: rate(1), Currency: "DIRHAM"}}},
		{name: "missing_id", edits: []domain.JobOrderEdit{{Rate: rate(1)}}},
		{name: "duplicate", edits: []domain.JobOrderEdit{{ID: 100, Rate: rate(1)}, {ID: 100, Rate: rate(2)}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.store.Calls = map[string]int{}
			_, err := s.service.SaveAll(s.ctx, 1, tc.edits)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
			s.Zero(s.store.TotalCalls())
		})
	}
}

func (s *JobOrderServiceSuite) TestSaveAllFailureLeavesOrdersUntouched() {
	s.store.Fail("job_orders.upsert_many")

	_, err := s.service.SaveAll(s.ctx, 1, []domain.JobOrderEdit{
		{ID: 100, Rate: rate(1)},
		{ID: 101, Rate: rate(2)},
	})
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))
	s.True(s.store.JobOrder(100).Rate.Equal(rate(100)))
	s.True(s.store.JobOrder(101).Rate.Equal(rate(200)))
}

func (s *JobOrderServiceSuite) TestListAttachesEvents() {
	orders, err := s.service.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)

	s.Equal(int64(100), orders[0].ID)
	s.Require().NotNil(orders[0].Event)
	s.Equal("Desert Shoot", orders[0].Event.Title)
	s.Nil(orders[1].Event)
}

func (s *JobOrderServiceSuite) TestListUnknownCrew() {
	_, err := s.service.List(s.ctx, 42)
	s.True(ierr.IsNotFound(err))
}
