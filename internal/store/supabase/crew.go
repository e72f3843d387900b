package supabase

import (
	"context"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const crewColumns = "id,user_id,full_name,email,role,status,type,currency,avatar_url"

type crewRepository struct {
	c *Client
}

type crewInsertRow struct {
	UserID    string `json:"user_id,omitempty"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	Type      string `json:"type,omitempty"`
	Currency  string `json:"currency,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (r *crewRepository) List(ctx context.Context) ([]*domain.CrewMember, error) {
	var rows []*domain.CrewMember
	err := r.c.run(ctx, "crew_members.list", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableCrewMembers).
			Select(crewColumns).
			ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *crewRepository) Get(ctx context.Context, id int64) (*domain.CrewMember, error) {
	var rows []*domain.CrewMember
	err := r.c.run(ctx, "crew_members.get", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableCrewMembers).
			Select(crewColumns).
			Eq("id", idString(id)).
			ExecuteWithContext(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("crew member", id)
	}
	return rows[0], nil
}

func (r *crewRepository) Create(ctx context.Context, m *domain.CrewMember) (*domain.CrewMember, error) {
	row := crewInsertRow{
		UserID:    m.UserID,
		FullName:  m.FullName,
		Email:     m.Email,
		Role:      m.Role,
		Status:    m.Status,
		Type:      m.Type,
		Currency:  m.Currency,
		AvatarURL: m.AvatarURL,
	}

	var created []*domain.CrewMember
	err := r.c.run(ctx, "crew_members.create", func(ctx context.Context) error {
		return r.c.sb.DB.From(tableCrewMembers).
			Insert(row).
			ExecuteWithContext(ctx, &created)
	})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return m, nil
	}
	return created[0], nil
}
