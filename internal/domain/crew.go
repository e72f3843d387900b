package domain

import "strings"

// DefaultAvatarPath is shown for crew members without an uploaded avatar.
const DefaultAvatarPath = "/static/images/user/owner.jpg"

type CrewMember struct {
	ID        int64  `json:"id" db:"id"`
	UserID    string `json:"user_id,omitempty" db:"user_id"`
	FullName  string `json:"full_name" db:"full_name"`
	Email     string `json:"email,omitempty" db:"email"`
	Role      string `json:"role" db:"role"`
	Status    string `json:"status" db:"status"`
	Type      string `json:"type" db:"type"`
	Currency  string `json:"currency,omitempty" db:"currency"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}

// Avatar returns the avatar URL or the placeholder when none is set.
func (c *CrewMember) Avatar() string {
	if url := strings.TrimSpace(c.AvatarURL); url != "" {
		return url
	}
	return DefaultAvatarPath
}

// CrewSummary is a roster row: a crew member together with the upcoming
// events they are booked on and the avatars of the people they share them
// with.
type CrewSummary struct {
	*CrewMember
	ProjectNames []string `json:"project_names"`
	TeamImages   []string `json:"team_images"`
}
