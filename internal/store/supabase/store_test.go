package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/logger"
)

type recordedRequest struct {
	Method string
	Table  string
	Query  map[string][]string
	Body   string
}

// fakePostgREST answers every request with the queued body for its table.
type fakePostgREST struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	status    int
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	table := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Table: table, Query: r.URL.Query(), Body: string(body)})
	status := f.status
	resp, ok := f.responses[table]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
		return
	}
	if !ok {
		resp = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func (f *fakePostgREST) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type StoreSuite struct {
	suite.Suite
	ctx    context.Context
	fake   *fakePostgREST
	server *httptest.Server
	stores *domain.Stores
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.fake = &fakePostgREST{responses: map[string]string{}}
	s.server = httptest.NewServer(s.fake)

	cfg := config.GetDefaultConfig()
	cfg.Supabase.URL = s.server.URL
	cfg.Supabase.ServiceKey = "service-key"

	client, err := NewClient(cfg)
	s.Require().NoError(err)
	s.stores = NewStores(client, cfg, logger.NewNop())
}

func (s *StoreSuite) TearDownTest() {
	s.server.Close()
}

func (s *StoreSuite) TestJobOrdersByCrew() {
	s.fake.responses[tableJobOrders] = `[
		{"id":1,"event_id":10,"crew_id":7,"rate":100,"currency":"AED","unit":"weekly"},
		{"id":2,"event_id":11,"crew_id":7,"rate":null,"currency":null,"unit":null}
	]`

	orders, err := s.stores.JobOrders.ListByCrew(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(domain.UnitWeekly, orders[0].Unit)
	s.True(decimal.NewFromInt(100).Equal(orders[0].Rate))
	s.Equal(domain.UnitDaily, orders[1].Unit)
	s.Equal("", orders[1].Currency)

	req := s.fake.last()
	s.Equal(http.MethodGet, req.Method)
	s.Equal(tableJobOrders, req.Table)
	s.Equal([]string{"eq.7"}, req.Query["crew_id"])
}

func (s *StoreSuite) TestUnknownUnitIsAnError() {
	s.fake.responses[tableJobOrders] = `[{"id":1,"event_id":10,"crew_id":7,"rate":100,"unit":"hourly"}]`

	_, err := s.stores.JobOrders.ListByCrew(s.ctx, 7)
	s.True(ierr.IsDatabase(err))
}

func (s *StoreSuite) TestEventsByIDs() {
	s.fake.responses[tableEvents] = `[{"id":10,"title":"Desert shoot","start_date":"2024-01-01","end_date":"2024-01-10"}]`

	events, err := s.stores.Events.List(s.ctx, domain.EventFilter{IDs: []int64{10, 11, 10}})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("2024-01-10", events[0].EndDate.String())

	s.Equal([]string{"in.(10,11)"}, s.fake.last().Query["id"])
}

func (s *StoreSuite) TestEventsByEmptyIDSetSkipsRequest() {
	events, err := s.stores.Events.List(s.ctx, domain.EventFilter{IDs: []int64{}})
	s.Require().NoError(err)
	s.Empty(events)
	s.Empty(s.fake.requests)
}

func (s *StoreSuite) TestActiveEventsFilter() {
	today := domain.NewDate(2024, 5, 1)
	_, err := s.stores.Events.List(s.ctx, domain.EventFilter{EndsOnOrAfter: today, StartsOnOrBefore: today})
	s.Require().NoError(err)

	req := s.fake.last()
	s.Equal([]string{"gte.2024-05-01"}, req.Query["end_date"])
	s.Equal([]string{"lte.2024-05-01"}, req.Query["start_date"])
}

func (s *StoreSuite) TestCrewGetNotFound() {
	_, err := s.stores.Crew.Get(s.ctx, 404)
	s.True(ierr.IsNotFound(err))
}

func (s *StoreSuite) TestUpsertManySendsOneRequest() {
	orders := []*domain.JobOrder{
		{ID: 1, EventID: 10, CrewID: 7, Rate: decimal.NewFromInt(150), Currency: "AED", Unit: domain.UnitDaily},
		{ID: 2, EventID: 11, CrewID: 7, Rate: decimal.NewFromInt(900), Currency: "AED", Unit: domain.UnitWeekly},
	}

	s.Require().NoError(s.stores.JobOrders.UpsertMany(s.ctx, orders))
	s.Len(s.fake.requests, 1)

	req := s.fake.last()
	s.Equal(http.MethodPost, req.Method)

	var sent []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(req.Body), &sent))
	s.Len(sent, 2)
	s.Equal("weekly", sent[1]["unit"])
}

func (s *StoreSuite) TestInvoiceCreateOmitsID() {
	s.fake.responses[tableInvoices] = `[{"id":55,"crew_id":7,"created_at":"2024-01-08T10:00:00Z"}]`

	inv := &domain.Invoice{
		CrewID:    7,
		StartDate: domain.NewDate(2024, 1, 5),
		EndDate:   domain.NewDate(2024, 1, 7),
		Total:     decimal.NewFromInt(300),
		Currency:  "AED",
	}
	created, err := s.stores.Invoices.Create(s.ctx, inv)
	s.Require().NoError(err)
	s.Equal(int64(55), created.ID)
	s.NotNil(created.CreatedAt)

	var sent map[string]any
	s.Require().NoError(json.Unmarshal([]byte(s.fake.last().Body), &sent))
	s.NotContains(sent, "id")
	s.NotContains(sent, "currency")
	s.Equal("2024-01-05", sent["start_date"])
	s.Equal([]any{}, sent["job_order_ids"])
}

func (s *StoreSuite) TestStoreFailureIsDatabaseError() {
	s.fake.status = http.StatusInternalServerError

	_, err := s.stores.Crew.List(s.ctx)
	s.True(ierr.IsDatabase(err))
}
