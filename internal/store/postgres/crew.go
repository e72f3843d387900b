package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/angelofallars/crewdesk/internal/domain"
)

const crewSelect = `
SELECT id,
       COALESCE(user_id::text, '') AS user_id,
       COALESCE(full_name, '')     AS full_name,
       COALESCE(email, '')         AS email,
       COALESCE(role, '')          AS role,
       COALESCE(status, '')        AS status,
       COALESCE(type, '')          AS type,
       COALESCE(currency, '')      AS currency,
       COALESCE(avatar_url, '')    AS avatar_url
FROM crew_members`

type crewRepository struct {
	db *DB
}

func (r *crewRepository) List(ctx context.Context) ([]*domain.CrewMember, error) {
	var rows []*domain.CrewMember
	err := r.db.run(ctx, "crew_members.list", func(ctx context.Context) error {
		return r.db.SelectContext(ctx, &rows, crewSelect+` ORDER BY id`)
	})
	return rows, err
}

func (r *crewRepository) Get(ctx context.Context, id int64) (*domain.CrewMember, error) {
	var member domain.CrewMember
	var missing bool
	err := r.db.run(ctx, "crew_members.get", func(ctx context.Context) error {
		err := r.db.GetContext(ctx, &member, crewSelect+` WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			missing = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, notFound("crew member", id)
	}
	return &member, nil
}

func (r *crewRepository) Create(ctx context.Context, m *domain.CrewMember) (*domain.CrewMember, error) {
	created := *m
	err := r.db.run(ctx, "crew_members.create", func(ctx context.Context) error {
		return r.db.QueryRowxContext(ctx, `
INSERT INTO crew_members (user_id, full_name, email, role, status, type, currency, avatar_url)
VALUES (NULLIF($1, '')::uuid, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
RETURNING id`,
			m.UserID, m.FullName, m.Email, m.Role, m.Status, m.Type, m.Currency, m.AvatarURL,
		).Scan(&created.ID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
