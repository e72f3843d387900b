package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

func date(y int, m time.Month, d int) domain.Date { return domain.NewDate(y, m, d) }

func window(start, end domain.Date) domain.InvoiceWindow {
	return domain.InvoiceWindow{Start: start, End: end}
}

type CalculateSuite struct {
	suite.Suite
	shoot  *domain.Event
	launch *domain.Event
}

func TestCalculate(t *testing.T) {
	suite.Run(t, new(CalculateSuite))
}

func (s *CalculateSuite) SetupTest() {
	s.shoot = &domain.Event{ID: 1, Title: "Desert shoot", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 10)}
	s.launch = &domain.Event{ID: 2, Title: "Product launch", StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 5)}
}

func (s *CalculateSuite) jobOrder(id, eventID int64, rate int64, unit domain.Unit) *domain.JobOrder {
	return &domain.JobOrder{ID: id, EventID: eventID, CrewID: 7, Rate: decimal.NewFromInt(rate), Currency: "AED", Unit: unit}
}

func (s *CalculateSuite) TestDailyRateClippedToWindow() {
	b, err := Calculate(window(date(2024, 1, 5), date(2024, 1, 7)),
		[]*domain.JobOrder{s.jobOrder(10, 1, 100, domain.UnitDaily)},
		[]*domain.Event{s.shoot}, "AED")
	s.Require().NoError(err)

	s.Require().Len(b.Items, 1)
	s.Equal(3, b.Items[0].BillableDays)
	s.True(decimal.NewFromInt(300).Equal(b.Items[0].Total))
	s.True(decimal.NewFromInt(300).Equal(b.Total))
	s.Equal("Desert shoot", b.Items[0].EventTitle)
}

func (s *CalculateSuite) TestWeeklyRateRoundsUpPartialWeeks() {
	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 10)),
		[]*domain.JobOrder{s.jobOrder(10, 1, 700, domain.UnitWeekly)},
		[]*domain.Event{s.shoot}, "AED")
	s.Require().NoError(err)

	s.Require().Len(b.Items, 1)
	s.Equal(10, b.Items[0].BillableDays)
	s.True(decimal.NewFromInt(1400).Equal(b.Items[0].Total))
}

func (s *CalculateSuite) TestMonthlyRate() {
	long := &domain.Event{ID: 3, Title: "Series", StartDate: date(2024, 1, 1), EndDate: date(2024, 3, 31)}
	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 31)),
		[]*domain.JobOrder{s.jobOrder(11, 3, 9000, domain.UnitMonthly)},
		[]*domain.Event{long}, "AED")
	s.Require().NoError(err)

	s.Equal(31, b.Items[0].BillableDays)
	s.True(decimal.NewFromInt(18000).Equal(b.Items[0].Total))
}

func (s *CalculateSuite) TestNonOverlappingEventIsExcluded() {
	b, err := Calculate(window(date(2024, 3, 1), date(2024, 3, 10)),
		[]*domain.JobOrder{s.jobOrder(10, 2, 100, domain.UnitDaily)},
		[]*domain.Event{s.launch}, "AED")
	s.Require().NoError(err)

	s.Empty(b.Items)
	s.True(b.Total.IsZero())
	s.Empty(b.JobOrderIDs())
}

func (s *CalculateSuite) TestMissingEventIsDropped() {
	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 31)),
		[]*domain.JobOrder{s.jobOrder(10, 99, 100, domain.UnitDaily), s.jobOrder(11, 1, 100, domain.UnitDaily)},
		[]*domain.Event{s.shoot}, "AED")
	s.Require().NoError(err)

	s.Equal([]int64{11}, b.JobOrderIDs())
}

func (s *CalculateSuite) TestWindowInsideEventCountsWholeWindow() {
	for _, w := range []domain.InvoiceWindow{
		window(date(2024, 1, 2), date(2024, 1, 2)),
		window(date(2024, 1, 2), date(2024, 1, 9)),
		window(date(2024, 1, 1), date(2024, 1, 10)),
	} {
		b, err := Calculate(w, []*domain.JobOrder{s.jobOrder(10, 1, 1, domain.UnitDaily)}, []*domain.Event{s.shoot}, "AED")
		s.Require().NoError(err)
		s.Equal(w.Start.DaysUntil(w.End)+1, b.Items[0].BillableDays)
	}
}

func (s *CalculateSuite) TestEveryIncludedLineHasAtLeastOneDay() {
	edge := window(date(2024, 1, 10), date(2024, 2, 1))
	b, err := Calculate(edge,
		[]*domain.JobOrder{s.jobOrder(10, 1, 50, domain.UnitDaily), s.jobOrder(11, 2, 50, domain.UnitDaily)},
		[]*domain.Event{s.shoot, s.launch}, "AED")
	s.Require().NoError(err)

	s.Require().Len(b.Items, 2)
	for _, item := range b.Items {
		s.Equal(1, item.BillableDays)
	}
}

func (s *CalculateSuite) TestEventEndingBeforeItStartsIsExcluded() {
	inverted := &domain.Event{ID: 4, Title: "Bad row", StartDate: date(2024, 1, 10), EndDate: date(2024, 1, 5)}
	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 31)),
		[]*domain.JobOrder{s.jobOrder(12, 4, 100, domain.UnitDaily), s.jobOrder(10, 1, 100, domain.UnitDaily)},
		[]*domain.Event{inverted, s.shoot}, "AED")
	s.Require().NoError(err)

	s.Equal([]int64{10}, b.JobOrderIDs())
	for _, item := range b.Items {
		s.GreaterOrEqual(item.BillableDays, 1)
	}
	s.True(decimal.NewFromInt(1000).Equal(b.Total))

	days, ok := BillableDays(window(date(2024, 1, 1), date(2024, 1, 31)), inverted)
	s.False(ok)
	s.Zero(days)
}

func (s *CalculateSuite) TestGrandTotalIsSumOfLinesInInputOrder() {
	orders := []*domain.JobOrder{
		s.jobOrder(12, 2, 250, domain.UnitDaily),
		s.jobOrder(10, 1, 700, domain.UnitWeekly),
		s.jobOrder(11, 1, 3000, domain.UnitMonthly),
	}
	orders[0].Rate = decimal.RequireFromString("99.95")

	b, err := Calculate(window(date(2024, 1, 1), date(2024, 2, 29)), orders, []*domain.Event{s.shoot, s.launch}, "AED")
	s.Require().NoError(err)

	s.Equal([]int64{12, 10, 11}, b.JobOrderIDs())
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.Total)
	}
	s.True(sum.Equal(b.Total))
	s.Equal("499.75", b.Items[0].Total.String())
}

func (s *CalculateSuite) TestIdempotent() {
	w := window(date(2024, 1, 3), date(2024, 2, 2))
	orders := []*domain.JobOrder{s.jobOrder(10, 1, 100, domain.UnitDaily), s.jobOrder(11, 2, 700, domain.UnitWeekly)}
	events := []*domain.Event{s.shoot, s.launch}

	first, err := Calculate(w, orders, events, "AED")
	s.Require().NoError(err)
	second, err := Calculate(w, orders, events, "AED")
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *CalculateSuite) TestMissingWindowBound() {
	_, err := Calculate(domain.InvoiceWindow{Start: date(2024, 1, 1)}, nil, nil, "AED")
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = Calculate(domain.InvoiceWindow{End: date(2024, 1, 1)}, nil, nil, "AED")
	s.True(ierr.IsValidation(err))
}

func (s *CalculateSuite) TestInvertedWindow() {
	_, err := Calculate(window(date(2024, 1, 10), date(2024, 1, 1)), nil, nil, "AED")
	s.True(ierr.IsValidation(err))
}

func (s *CalculateSuite) TestMixedCurrenciesRejected() {
	usd := s.jobOrder(11, 2, 100, domain.UnitDaily)
	usd.Currency = "USD"

	_, err := Calculate(window(date(2024, 1, 1), date(2024, 2, 28)),
		[]*domain.JobOrder{s.jobOrder(10, 1, 100, domain.UnitDaily), usd},
		[]*domain.Event{s.shoot, s.launch}, "AED")
	s.True(ierr.IsValidation(err))
}

func (s *CalculateSuite) TestMixedCurrencyOutsideWindowIsIgnored() {
	usd := s.jobOrder(11, 2, 100, domain.UnitDaily)
	usd.Currency = "USD"

	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 31)),
		[]*domain.JobOrder{s.jobOrder(10, 1, 100, domain.UnitDaily), usd},
		[]*domain.Event{s.shoot, s.launch}, "AED")
	s.Require().NoError(err)
	s.Equal("AED", b.Currency)
}

func (s *CalculateSuite) TestDefaultCurrency() {
	order := s.jobOrder(10, 1, 100, domain.UnitDaily)
	order.Currency = ""

	b, err := Calculate(window(date(2024, 1, 1), date(2024, 1, 1)), []*domain.JobOrder{order}, []*domain.Event{s.shoot}, "AED")
	s.Require().NoError(err)
	s.Equal("AED", b.Items[0].Currency)
	s.Equal("AED", b.Currency)
}

func TestBreakdownInvoice(t *testing.T) {
	shoot := &domain.Event{ID: 1, Title: "Desert shoot", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 10)}
	order := &domain.JobOrder{ID: 10, EventID: 1, Rate: decimal.NewFromInt(100), Currency: "AED"}

	b, err := Calculate(window(date(2024, 1, 5), date(2024, 1, 7)), []*domain.JobOrder{order}, []*domain.Event{shoot}, "AED")
	require.NoError(t, err)

	inv := b.Invoice(7)
	assert.Equal(t, int64(7), inv.CrewID)
	assert.Equal(t, []int64{10}, inv.JobOrderIDs)
	assert.Equal(t, "2024-01-05", inv.StartDate.String())
	assert.Equal(t, "2024-01-07", inv.EndDate.String())
	assert.Equal(t, "300", inv.Total.String())
	assert.Len(t, inv.Breakdown, 1)
}
