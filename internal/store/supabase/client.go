// Package supabase implements the domain repositories on top of the
// Supabase PostgREST API.
package supabase

import (
	"context"
	"strconv"
	"time"

	supa "github.com/nedpals/supabase-go"
	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/logger"
)

const (
	tableCrewMembers = "crew_members"
	tableEvents      = "events"
	tableEventCrew   = "event_crew"
	tableJobOrders   = "event_crew_job_orders"
	tableInvoices    = "invoices"
)

// Client runs PostgREST calls with a per call timeout.
type Client struct {
	sb      *supa.Client
	timeout time.Duration
	logger  *logger.Logger
}

// NewClient creates the Supabase client crewdesk shares between the stores
// and the auth provider.
func NewClient(cfg *config.Configuration) (*supa.Client, error) {
	client := supa.CreateClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	if client == nil {
		return nil, ierr.NewError("failed to create supabase client").
			Mark(ierr.ErrSystem)
	}
	return client, nil
}

func newClient(sb *supa.Client, cfg *config.Configuration, log *logger.Logger) *Client {
	return &Client{
		sb:      sb,
		timeout: cfg.Store.Timeout,
		logger:  log.With("store", "supabase"),
	}
}

// NewStores builds every repository over sb.
func NewStores(sb *supa.Client, cfg *config.Configuration, log *logger.Logger) *domain.Stores {
	c := newClient(sb, cfg, log)
	return &domain.Stores{
		Crew:      &crewRepository{c: c},
		Events:    &eventRepository{c: c},
		EventCrew: &eventCrewRepository{c: c},
		JobOrders: &jobOrderRepository{c: c},
		Invoices:  &invoiceRepository{c: c},
	}
}

// run executes fn under the store timeout and marks failures as database
// errors.
func (c *Client) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	c.logger.Debugw("postgrest call", "op", op, "duration", time.Since(start), "error", err)
	if err != nil {
		return ierr.WithError(err).
			WithHint("The data store request failed. Please try again.").
			WithMessagef("op:%s", op).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func notFound(entity string, id int64) error {
	return ierr.NewErrorf("%s %d not found", entity, id).
		WithHintf("The requested %s does not exist.", entity).
		Mark(ierr.ErrNotFound)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idStrings(ids []int64) []string {
	return lo.Map(lo.Uniq(ids), func(id int64, _ int) string { return idString(id) })
}
