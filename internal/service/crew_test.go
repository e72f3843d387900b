package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
)

type CrewServiceSuite struct {
	BaseServiceSuite
	service CrewService
}

func TestCrewService(t *testing.T) {
	suite.Run(t, new(CrewServiceSuite))
}

func (s *CrewServiceSuite) SetupTest() {
	s.BaseServiceSuite.SetupTest()
	s.service = NewCrewService(s.params)
}

func (s *CrewServiceSuite) TestRosterEnrichment() {
	s.store.AddCrew(
		&domain.CrewMember{ID: 1, FullName: "Alex Doe"},
		&domain.CrewMember{ID: 2, FullName: "Sam Roe", AvatarURL: "https://files.test/avatars/sam.jpg"},
		&domain.CrewMember{ID: 3, FullName: "Kim Poe", AvatarURL: "https://files.test/avatars/kim.jpg"},
	)
	s.store.AddEvents(
		&domain.Event{ID: 10, Title: "Desert Shoot", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 10)},
		&domain.Event{ID: 11, Title: "Old Promo", StartDate: date(2023, time.December, 1), EndDate: date(2024, time.January, 2)},
	)
	s.store.AddEventCrew(
		&domain.EventCrew{EventID: 10, CrewMemberID: 1},
		&domain.EventCrew{EventID: 10, CrewMemberID: 2},
		&domain.EventCrew{EventID: 11, CrewMemberID: 1},
		&domain.EventCrew{EventID: 11, CrewMemberID: 3},
	)

	roster, err := s.service.Roster(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(roster, 3)

	s.Equal([]string{"Desert Shoot"}, roster[0].ProjectNames)
	s.Equal([]string{"https://files.test/avatars/sam.jpg"}, roster[0].TeamImages)

	s.Equal([]string{"Desert Shoot"}, roster[1].ProjectNames)
	s.Equal([]string{domain.DefaultAvatarPath}, roster[1].TeamImages)

	s.Empty(roster[2].ProjectNames)
	s.Empty(roster[2].TeamImages)
}

func (s *CrewServiceSuite) TestRosterWithoutUpcomingEvents() {
	s.store.AddCrew(&domain.CrewMember{ID: 1, FullName: "Alex Doe"})

	roster, err := s.service.Roster(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(roster, 1)
	s.Empty(roster[0].ProjectNames)
	s.Zero(s.store.Calls["event_crew.list"])
}

func (s *CrewServiceSuite) TestSignUpOnboardsCrewMember() {
	member, err := s.service.SignUp(s.ctx, SignUpRequest{
		Credentials: auth.Credentials{Email: " new@crew.test ", Password: "secret123"},
		FullName:    "New Hire",
		Type:        "Freelancer",
	})
	s.Require().NoError(err)

	s.Equal("user-1", member.UserID)
	s.Equal("new@crew.test", member.Email)
	s.Equal("AED", member.Currency)
	s.Equal("https://files.test/storage/v1/object/public/avatars/user-1.jpg", member.AvatarURL)

	s.Require().Len(s.storage.Objects, 1)
	obj := s.storage.Objects[0]
	s.Equal("avatars", obj.Bucket)
	s.Equal("user-1.jpg", obj.Key)
	s.True(obj.Upsert)
}

func (s *CrewServiceSuite) TestSignUpSurvivesAvatarFailure() {
	s.storage.Err = ierr.NewError("bucket gone").Mark(ierr.ErrHTTPClient)

	member, err := s.service.SignUp(s.ctx, SignUpRequest{
		Credentials: auth.Credentials{Email: "new@crew.test", Password: "secret123"},
		FullName:    "New Hire",
	})
	s.Require().NoError(err)
	s.Empty(member.AvatarURL)
	s.Equal(domain.DefaultAvatarPath, member.Avatar())
}

func (s *CrewServiceSuite) TestSignUpValidation() {
	_, err := s.service.SignUp(s.ctx, SignUpRequest{
		Credentials: auth.Credentials{Email: "not-an-email", Password: "secret123"},
		FullName:    "New Hire",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.store.TotalCalls())
}

func (s *CrewServiceSuite) TestSignUpProfileFailure() {
	s.store.Fail("crew.create")

	_, err := s.service.SignUp(s.ctx, SignUpRequest{
		Credentials: auth.Credentials{Email: "new@crew.test", Password: "secret123"},
		FullName:    "New Hire",
	})
	s.Require().Error(err)
	s.True(ierr.IsDatabase(err))
	s.Equal("The account was created but the crew profile could not be saved.", ierr.DisplayMessage(err))
}
