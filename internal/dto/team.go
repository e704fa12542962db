package dto

import "time"

// TeamCreateRequest creates a team.
type TeamCreateRequest struct {
	Name string `json:"name" validate:"notblank,max=255"`
}

// TeamCreateMessages localizes TeamCreateRequest violations.
var TeamCreateMessages = map[string]string{
	"Name.notblank": "Tên team không được để trống",
	"Name.max":      "Tên team không được vượt quá 255 ký tự",
}

// TeamMemberAddRequest adds a member identified by userId or email.
type TeamMemberAddRequest struct {
	UserID *int64  `json:"userId"`
	Email  *string `json:"email" validate:"omitempty,email"`
}

// TeamMemberAddMessages localizes TeamMemberAddRequest violations.
var TeamMemberAddMessages = map[string]string{
	"Email.email": "Email không hợp lệ",
}

// TeamResponse returns a team with its member count.
type TeamResponse struct {
	TeamID      int64     `json:"teamId"`
	Name        string    `json:"name"`
	OwnerID     int64     `json:"ownerId"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
