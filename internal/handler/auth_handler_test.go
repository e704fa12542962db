package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/middleware"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/service"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = int64(len(f.users) + 1)
	if f.users == nil {
		f.users = make(map[string]*models.User)
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _ int64, _ string, _ time.Time) error {
	return nil
}

func newAuthRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAuthService(repo, nil, nil, zap.NewNop(), service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "smartsurvey",
	})
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", middleware.JWT(svc), h.Me)
	return r
}

func TestAuthHandlerRegister(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	body := `{"fullName":"Nguyễn Văn A","email":"a@example.com","password":"secret123"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Status  int                    `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusCreated, envelope.Status)
	assert.Equal(t, "Đăng ký tài khoản thành công", envelope.Message)
	assert.Equal(t, "creator", envelope.Data["role"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandlerRegisterDuplicateEnvelope(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{users: map[string]*models.User{
		"a@example.com": {ID: 1, Email: "a@example.com"},
	}})

	body := `{"fullName":"Nguyễn Văn A","email":"a@example.com","password":"secret123"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Message   string `json:"message"`
		Error     string `json:"error"`
		Status    int    `json:"status"`
		Path      string `json:"path"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Email đã được sử dụng", envelope.Message)
	assert.Equal(t, "CONFLICT", envelope.Error)
	assert.Equal(t, http.StatusConflict, envelope.Status)
	assert.Equal(t, "/auth/register", envelope.Path)
	assert.NotEmpty(t, envelope.Timestamp)
}

func TestAuthHandlerRegisterMalformedBody(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"fullName":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandlerLoginAndMe(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newAuthRouter(&fakeUserRepo{users: map[string]*models.User{
		"a@example.com": {
			ID:           7,
			FullName:     "Nguyễn Văn A",
			Email:        "a@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleCreator,
			IsActive:     true,
		},
	}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Token string `json:"token"`
			Type  string `json:"type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Bearer", envelope.Data.Type)
	require.NotEmpty(t, envelope.Data.Token)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@example.com")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandlerMeWithoutToken(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}
