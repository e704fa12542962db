package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "dữ liệu không hợp lệ")
	ErrBadRequest         = New("BAD_REQUEST", http.StatusBadRequest, "yêu cầu không hợp lệ")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "không tìm thấy tài nguyên")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "không có quyền thực hiện")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "chưa xác thực")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "dữ liệu bị trùng lặp")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "email hoặc mật khẩu không đúng")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "tài khoản đã bị vô hiệu hóa")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "lỗi hệ thống")

	// ErrCacheMiss signals a cache lookup without a stored value.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
