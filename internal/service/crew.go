package service

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/angelofallars/crewdesk/internal/auth"
	"github.com/angelofallars/crewdesk/internal/domain"
	ierr "github.com/angelofallars/crewdesk/internal/errors"
	"github.com/angelofallars/crewdesk/internal/storage"
	"github.com/angelofallars/crewdesk/internal/validator"
)

type CrewService interface {
	// Roster lists every crew member with their upcoming projects and
	// teammates.
	Roster(ctx context.Context) ([]*domain.CrewSummary, error)
	Get(ctx context.Context, id int64) (*domain.CrewMember, error)
	// SignUp creates the auth user and their crew profile.
	SignUp(ctx context.Context, req SignUpRequest) (*domain.CrewMember, error)
}

type SignUpRequest struct {
	auth.Credentials
	FullName string `json:"full_name" validate:"required"`
	Type     string `json:"type"`
}

type crewService struct {
	Params
}

func NewCrewService(params Params) CrewService {
	return &crewService{Params: params}
}

func (s *crewService) Roster(ctx context.Context) ([]*domain.CrewSummary, error) {
	members, err := s.Stores.Crew.List(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.Stores.Events.List(ctx, domain.EventFilter{EndsOnOrAfter: s.today()})
	if err != nil {
		return nil, err
	}

	var links []*domain.EventCrew
	if len(upcoming) > 0 {
		links, err = s.Stores.EventCrew.List(ctx, domain.EventCrewFilter{
			EventIDs: lo.Map(upcoming, func(e *domain.Event, _ int) int64 { return e.ID }),
		})
		if err != nil {
			return nil, err
		}
	}

	eventsByMember := lo.GroupBy(links, func(l *domain.EventCrew) int64 { return l.CrewMemberID })
	crewByEvent := lo.GroupBy(links, func(l *domain.EventCrew) int64 { return l.EventID })

	return lo.Map(members, func(m *domain.CrewMember, _ int) *domain.CrewSummary {
		eventIDs := lo.Map(eventsByMember[m.ID], func(l *domain.EventCrew, _ int) int64 { return l.EventID })

		projects := lo.FilterMap(upcoming, func(e *domain.Event, _ int) (string, bool) {
			return e.Title, lo.Contains(eventIDs, e.ID)
		})

		teammates := map[int64]struct{}{}
		for _, eventID := range eventIDs {
			for _, l := range crewByEvent[eventID] {
				if l.CrewMemberID != m.ID {
					teammates[l.CrewMemberID] = struct{}{}
				}
			}
		}
		images := lo.FilterMap(members, func(other *domain.CrewMember, _ int) (string, bool) {
			_, ok := teammates[other.ID]
			return other.Avatar(), ok
		})

		return &domain.CrewSummary{
			CrewMember:   m,
			ProjectNames: projects,
			TeamImages:   images,
		}
	}), nil
}

func (s *crewService) Get(ctx context.Context, id int64) (*domain.CrewMember, error) {
	return s.Stores.Crew.Get(ctx, id)
}

func (s *crewService) SignUp(ctx context.Context, req SignUpRequest) (*domain.CrewMember, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	userID, err := s.Auth.SignUp(ctx, req.Credentials)
	if err != nil {
		return nil, err
	}

	member, err := s.Stores.Crew.Create(ctx, &domain.CrewMember{
		UserID:    userID,
		FullName:  req.FullName,
		Email:     req.Email,
		Type:      req.Type,
		Currency:  s.defaultCurrency(),
		AvatarURL: s.uploadPlaceholderAvatar(ctx, userID),
	})
	if err != nil {
		s.Logger.Errorw("failed to create crew member", "user_id", userID, "error", err)
		return nil, ierr.Supersede(err).
			WithHint("The account was created but the crew profile could not be saved.").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("crew member onboarded", "crew_id", member.ID, "user_id", userID)
	return member, nil
}

// uploadPlaceholderAvatar stores the placeholder under the user's ID and
// returns its public URL. Failures are logged only; an empty URL falls back
// to the default avatar when displayed.
func (s *crewService) uploadPlaceholderAvatar(ctx context.Context, userID string) string {
	if s.Storage == nil || len(s.PlaceholderAvatar) == 0 {
		return ""
	}
	if !storage.IsImage(s.PlaceholderAvatar) {
		s.Logger.Warnw("placeholder avatar is not an image, skipping upload", "user_id", userID)
		return ""
	}

	uploaded, err := s.Storage.Upload(ctx, storage.Object{
		Bucket: s.Config.Storage.AvatarBucket,
		Key:    userID + ".jpg",
		Data:   s.PlaceholderAvatar,
		Upsert: true,
	})
	if err != nil {
		s.Logger.Warnw("avatar upload failed", "user_id", userID, "error", err)
		return ""
	}
	return uploaded.PublicURL
}
