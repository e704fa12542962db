package models

import "time"

// Role is the closed set of system-level roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCreator    Role = "creator"
	RoleRespondent Role = "respondent"
)

// DefaultRole is applied when a create-user payload omits the role field.
const DefaultRole = RoleCreator

// Description returns the Vietnamese display text for the role.
func (r Role) Description() string {
	switch r {
	case RoleAdmin:
		return "Quản trị viên hệ thống"
	case RoleCreator:
		return "Người tạo khảo sát"
	case RoleRespondent:
		return "Người trả lời khảo sát"
	}
	return string(r)
}

// Valid reports membership in the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleRespondent:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
// PasswordHash never serializes to JSON.
type User struct {
	ID           int64     `db:"user_id" json:"userId"`
	FullName     string    `db:"full_name" json:"fullName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *Role
	IsActive  *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
