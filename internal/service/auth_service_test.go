package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type mockUserRepo struct {
	users       map[string]*models.User
	created     *models.User
	newPassword string
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = 1
	m.created = user
	if m.users == nil {
		m.users = make(map[string]*models.User)
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, _ int64, passwordHash string, _ time.Time) error {
	m.newPassword = passwordHash
	return nil
}

type mockActivityRecorder struct {
	entries []*models.ActivityLog
}

func (m *mockActivityRecorder) Create(_ context.Context, entry *models.ActivityLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func newAuthService(repo *mockUserRepo, activity *mockActivityRecorder) *AuthService {
	return NewAuthService(repo, activity, nil, zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "smartsurvey",
	})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceRegisterDefaultsRole(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newAuthService(repo, nil)

	res, err := svc.Register(context.Background(), dto.UserCreateRequest{
		FullName: "Nguyễn Văn A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleCreator), res.Role)
	assert.True(t, res.IsActive)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "secret123", repo.created.PasswordHash)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 1, Email: "a@example.com"},
	}}
	svc := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), dto.UserCreateRequest{
		FullName: "Nguyễn Văn A",
		Email:    "a@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "Email đã được sử dụng", appErr.Message)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := newAuthService(&mockUserRepo{}, nil)

	_, err := svc.Register(context.Background(), dto.UserCreateRequest{
		FullName: "   ",
		Email:    "not-an-email",
		Password: "123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {
			ID:           7,
			FullName:     "Nguyễn Văn A",
			Email:        "a@example.com",
			PasswordHash: hashOf(t, "secret123"),
			Role:         models.RoleCreator,
			IsActive:     true,
		},
	}}
	activity := &mockActivityRecorder{}
	svc := newAuthService(repo, activity)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "secret123"}, models.RequestMeta{IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.Type)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(7), res.ID)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleCreator, claims.Role)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, models.ActionLogin, activity.entries[0].ActionType)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 7, Email: "a@example.com", PasswordHash: hashOf(t, "secret123"), IsActive: true},
	}}
	svc := newAuthService(repo, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "wrong-pass"}, models.RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "missing@example.com", Password: "secret123"}, models.RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 7, Email: "a@example.com", PasswordHash: hashOf(t, "secret123"), IsActive: false},
	}}
	svc := newAuthService(repo, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "secret123"}, models.RequestMeta{})
	assert.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 7, Email: "a@example.com", PasswordHash: hashOf(t, "old-secret"), IsActive: true},
	}}
	svc := newAuthService(repo, nil)

	err := svc.ChangePassword(context.Background(), 7, dto.ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
		ConfirmPassword: "new-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.newPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.newPassword), []byte("new-secret")))
}

func TestAuthServiceChangePasswordMismatch(t *testing.T) {
	svc := newAuthService(&mockUserRepo{}, nil)

	err := svc.ChangePassword(context.Background(), 7, dto.ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Xác nhận mật khẩu không khớp", appErr.Message)
}

func TestAuthServiceChangePasswordWrongCurrent(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 7, Email: "a@example.com", PasswordHash: hashOf(t, "old-secret"), IsActive: true},
	}}
	svc := newAuthService(repo, nil)

	err := svc.ChangePassword(context.Background(), 7, dto.ChangePasswordRequest{
		CurrentPassword: "not-the-one",
		NewPassword:     "new-secret",
		ConfirmPassword: "new-secret",
	})
	require.Error(t, err)
	assert.Equal(t, "Mật khẩu hiện tại không đúng", appErrors.FromError(err).Message)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	svc := newAuthService(&mockUserRepo{}, nil)
	other := NewAuthService(&mockUserRepo{}, nil, nil, zap.NewNop(), AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})

	token, err := other.generateToken(&models.User{ID: 7, Email: "a@example.com", Role: models.RoleCreator})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
