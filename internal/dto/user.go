package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// UserCreateRequest is the payload for registering or creating a user.
// Role is a pointer so an absent field (defaulted to creator) stays
// distinguishable from an invalid value (rejected by oneof).
type UserCreateRequest struct {
	FullName string       `json:"fullName" validate:"notblank,max=255"`
	Email    string       `json:"email" validate:"notblank,email,max=255"`
	Password string       `json:"password" validate:"notblank,min=6,max=255"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=admin creator respondent"`
}

// UserCreateMessages localizes UserCreateRequest violations.
var UserCreateMessages = map[string]string{
	"FullName.notblank": "Họ tên không được để trống",
	"FullName.max":      "Họ tên không được vượt quá 255 ký tự",
	"Email.notblank":    "Email không được để trống",
	"Email.email":       "Email không hợp lệ",
	"Email.max":         "Email không được vượt quá 255 ký tự",
	"Password.notblank": "Mật khẩu không được để trống",
	"Password.min":      "Mật khẩu phải có ít nhất 6 ký tự",
	"Password.max":      "Mật khẩu không được vượt quá 255 ký tự",
	"Role.oneof":        "Vai trò không hợp lệ",
}

// UserUpdateRequest updates mutable user attributes (admin operation).
type UserUpdateRequest struct {
	FullName *string      `json:"fullName" validate:"omitempty,notblank,max=255"`
	Role     *models.Role `json:"role" validate:"omitempty,oneof=admin creator respondent"`
	IsActive *bool        `json:"isActive"`
}

// UserUpdateMessages localizes UserUpdateRequest violations.
var UserUpdateMessages = map[string]string{
	"FullName.notblank": "Họ tên không được để trống",
	"FullName.max":      "Họ tên không được vượt quá 255 ký tự",
	"Role.oneof":        "Vai trò không hợp lệ",
}

// UserResponse returns user info; it never carries a password field.
type UserResponse struct {
	UserID    int64     `json:"userId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user model onto the response shape.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:    u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
