package dto

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

// LoginMessages localizes LoginRequest violations.
var LoginMessages = map[string]string{
	"Email.notblank":    "Email không được để trống",
	"Email.email":       "Email không hợp lệ",
	"Password.notblank": "Mật khẩu không được để trống",
}

// AuthResponse returns the issued token and user info.
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// ChangePasswordRequest carries the password rotation payload. Only
// newPassword has a minimum length; current and confirm are non-blank only,
// and equality of new and confirm is left to the business layer.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"notblank"`
	NewPassword     string `json:"newPassword" validate:"notblank,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"notblank"`
}

// ChangePasswordMessages localizes ChangePasswordRequest violations.
var ChangePasswordMessages = map[string]string{
	"CurrentPassword.notblank": "Mật khẩu hiện tại không được để trống",
	"NewPassword.notblank":     "Mật khẩu mới không được để trống",
	"NewPassword.min":          "Mật khẩu mới phải có ít nhất 6 ký tự",
	"ConfirmPassword.notblank": "Xác nhận mật khẩu không được để trống",
}
