package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// UpdateProfileRequest lets a user rename themselves.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"notblank,max=255"`
}

// UpdateProfileMessages localizes UpdateProfileRequest violations.
var UpdateProfileMessages = map[string]string{
	"FullName.notblank": "Họ tên không được để trống",
	"FullName.max":      "Họ tên không được vượt quá 255 ký tự",
}

// ProfileResponse returns the current user's profile.
type ProfileResponse struct {
	UserID    int64     `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProfileResponse maps a user model onto the profile shape.
func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		UserID:    u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
