package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type registerPayload struct {
	FullName string  `validate:"notblank,max=255"`
	Email    string  `validate:"notblank,email"`
	Password string  `validate:"notblank,min=6"`
	Nickname *string `validate:"omitempty,notblank"`
}

var registerMessages = map[string]string{
	"FullName.notblank": "Họ tên không được để trống",
	"Email.notblank":    "Email không được để trống",
	"Email.email":       "Email không hợp lệ",
	"Password.min":      "Mật khẩu phải có ít nhất 6 ký tự",
}

func TestNotblankRejectsWhitespace(t *testing.T) {
	v := New()

	err := v.Struct(registerPayload{FullName: "   ", Email: "a@example.com", Password: "secret123"})
	require.Error(t, err)

	err = v.Struct(registerPayload{FullName: "Nguyễn Văn A", Email: "a@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestNotblankWithOmitemptySkipsNilPointer(t *testing.T) {
	v := New()

	err := v.Struct(registerPayload{FullName: "Nguyễn Văn A", Email: "a@example.com", Password: "secret123", Nickname: nil})
	assert.NoError(t, err)

	blank := "  "
	err = v.Struct(registerPayload{FullName: "Nguyễn Văn A", Email: "a@example.com", Password: "secret123", Nickname: &blank})
	assert.Error(t, err)
}

func TestCheckJoinsAllViolations(t *testing.T) {
	v := New()

	err := Check(v, registerPayload{FullName: "", Email: "not-an-email", Password: "123"}, registerMessages)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Họ tên không được để trống")
	assert.Contains(t, appErr.Message, "Email không hợp lệ")
	assert.Contains(t, appErr.Message, "Mật khẩu phải có ít nhất 6 ký tự")
	assert.Contains(t, appErr.Message, "; ")
}

type grantEntry struct {
	Permission string `validate:"required,oneof=OWNER EDITOR ANALYST VIEWER"`
}

type grantList struct {
	TeamAccess []grantEntry `validate:"omitempty,dive"`
}

func TestTranslateStripsSliceIndex(t *testing.T) {
	v := New()

	err := Check(v, grantList{TeamAccess: []grantEntry{{Permission: "EDITOR"}, {Permission: ""}}}, map[string]string{
		"TeamAccess.Permission.required": "permission không được để trống",
	})
	require.Error(t, err)
	assert.Equal(t, "permission không được để trống", appErrors.FromError(err).Message)
}

func TestTranslateFallsBackToFieldName(t *testing.T) {
	v := New()

	err := Check(v, registerPayload{FullName: "A", Email: "bad", Password: "secret123"}, nil)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "Email không hợp lệ")
}
