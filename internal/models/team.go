package models

import "time"

// Team groups users for shared survey access.
type Team struct {
	ID        int64     `db:"team_id" json:"teamId"`
	Name      string    `db:"name" json:"name"`
	OwnerID   int64     `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TeamMember links a user to a team.
type TeamMember struct {
	TeamID   int64     `db:"team_id" json:"teamId"`
	UserID   int64     `db:"user_id" json:"userId"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joinedAt"`
}
