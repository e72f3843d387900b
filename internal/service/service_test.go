package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
	"github.com/angelofallars/crewdesk/internal/logger"
	"github.com/angelofallars/crewdesk/internal/testutil"
)

// BaseServiceSuite wires every service to in-memory collaborators. The
// clock is fixed at 2024-01-06.
type BaseServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *testutil.InMemoryStore
	storage  *testutil.RecordingStorage
	renderer *testutil.RecordingRenderer
	auth     *testutil.FakeAuth
	params   Params
}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func (s *BaseServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewInMemoryStore()
	s.storage = &testutil.RecordingStorage{}
	s.renderer = &testutil.RecordingRenderer{}
	s.auth = testutil.NewFakeAuth()
	s.params = Params{
		Logger:            logger.NewNop(),
		Config:            config.GetDefaultConfig(),
		Stores:            s.store.Stores(),
		Storage:           s.storage,
		Renderer:          s.renderer,
		Auth:              s.auth,
		PlaceholderAvatar: jpegHeader,
		Now: func() time.Time {
			return time.Date(2024, time.January, 6, 15, 30, 0, 0, time.UTC)
		},
	}
}

func date(y int, m time.Month, d int) domain.Date { return domain.NewDate(y, m, d) }

func rate(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
