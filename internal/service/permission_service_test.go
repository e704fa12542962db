package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type mockPermissionRepo struct {
	grants   []repository.PermissionGrant
	replaced []models.SurveyPermission
}

func (m *mockPermissionRepo) ListBySurvey(_ context.Context, _ int64) ([]repository.PermissionGrant, error) {
	return m.grants, nil
}

func (m *mockPermissionRepo) FindEffective(_ context.Context, _, userID int64) (*models.SurveyPermission, error) {
	for _, g := range m.grants {
		if g.UserID == userID {
			return &g.SurveyPermission, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPermissionRepo) ReplaceAll(_ context.Context, surveyID int64, grants []models.SurveyPermission) error {
	m.replaced = grants
	updated := make([]repository.PermissionGrant, 0, len(grants))
	for _, g := range grants {
		g.SurveyID = surveyID
		updated = append(updated, repository.PermissionGrant{SurveyPermission: g})
	}
	m.grants = updated
	return nil
}

type mockPermissionUsers struct {
	users map[int64]*models.User
}

func (m *mockPermissionUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPermissionUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockSurveyFinder struct {
	survey *models.Survey
}

func (m *mockSurveyFinder) FindByID(_ context.Context, id int64) (*models.Survey, error) {
	if m.survey == nil || m.survey.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.survey, nil
}

type mockTeamChecker struct {
	members map[int64]map[int64]bool
}

func (m *mockTeamChecker) IsMember(_ context.Context, teamID, userID int64) (bool, error) {
	return m.members[teamID][userID], nil
}

type mockNotifier struct {
	sent []*models.Notification
}

func (m *mockNotifier) Notify(_ context.Context, n *models.Notification) {
	m.sent = append(m.sent, n)
}

func ptrInt64(v int64) *int64 { return &v }

func ptrString(v string) *string { return &v }

func newPermissionFixture() (*PermissionService, *mockPermissionRepo, *mockNotifier) {
	repo := &mockPermissionRepo{}
	users := &mockPermissionUsers{users: map[int64]*models.User{
		1: {ID: 1, Email: "owner@example.com", FullName: "Chủ khảo sát"},
		2: {ID: 2, Email: "editor@example.com", FullName: "Biên tập"},
		3: {ID: 3, Email: "analyst@example.com", FullName: "Phân tích"},
	}}
	surveys := &mockSurveyFinder{survey: &models.Survey{ID: 10, UserID: 1, Title: "Khảo sát mức độ hài lòng"}}
	teams := &mockTeamChecker{members: map[int64]map[int64]bool{
		5: {2: true},
	}}
	notify := &mockNotifier{}
	svc := NewPermissionService(repo, surveys, users, teams, notify, nil, zap.NewNop())
	return svc, repo, notify
}

func TestPermissionUpdateGrantsAndNotifies(t *testing.T) {
	svc, repo, notify := newPermissionFixture()

	res, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			{UserID: ptrInt64(2), Permission: models.PermissionEditor},
			{Email: ptrString("analyst@example.com"), Permission: models.PermissionAnalyst},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	require.Len(t, repo.replaced, 2)
	assert.Equal(t, int64(2), repo.replaced[0].UserID)
	assert.Equal(t, models.PermissionAnalyst, repo.replaced[1].Permission)

	require.Len(t, notify.sent, 2)
	assert.Equal(t, models.NotifySurveyShared, notify.sent[0].Type)
}

func TestPermissionUpdateSkipsWithWarnings(t *testing.T) {
	svc, repo, _ := newPermissionFixture()

	res, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			// no grantee, unknown user, survey owner, then a user outside team 5
			{Permission: models.PermissionViewer},
			{UserID: ptrInt64(99), Permission: models.PermissionViewer},
			{UserID: ptrInt64(1), Permission: models.PermissionEditor},
			{UserID: ptrInt64(3), RestrictedTeamID: ptrInt64(5), Permission: models.PermissionViewer},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 4)
	assert.Contains(t, res.Warnings[0], "thiếu userId hoặc email")
	assert.Contains(t, res.Warnings[1], "không tìm thấy người dùng")
	assert.Contains(t, res.Warnings[2], "chủ sở hữu")
	assert.Contains(t, res.Warnings[3], "không thuộc team")
	assert.Empty(t, repo.replaced)
}

func TestPermissionUpdateLaterEntryWins(t *testing.T) {
	svc, repo, _ := newPermissionFixture()

	_, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			{UserID: ptrInt64(2), Permission: models.PermissionViewer},
			{UserID: ptrInt64(2), Permission: models.PermissionEditor},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.replaced, 1)
	assert.Equal(t, models.PermissionEditor, repo.replaced[0].Permission)
}

func TestPermissionUpdateEmptyListRevokesAll(t *testing.T) {
	svc, repo, notify := newPermissionFixture()
	repo.grants = []repository.PermissionGrant{
		{SurveyPermission: models.SurveyPermission{SurveyID: 10, UserID: 2, Permission: models.PermissionEditor}},
	}

	res, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Users)
	assert.NotNil(t, repo.replaced)
	assert.Empty(t, repo.replaced)

	// the revoked grantee hears about losing access
	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(2), notify.sent[0].UserID)
	assert.Equal(t, models.NotifySurveyPermissionChange, notify.sent[0].Type)
	assert.Contains(t, notify.sent[0].Message, "thu hồi")
}

func TestPermissionUpdateNotifiesOnlyDropped(t *testing.T) {
	svc, repo, notify := newPermissionFixture()
	repo.grants = []repository.PermissionGrant{
		{SurveyPermission: models.SurveyPermission{SurveyID: 10, UserID: 2, Permission: models.PermissionEditor}},
		{SurveyPermission: models.SurveyPermission{SurveyID: 10, UserID: 3, Permission: models.PermissionAnalyst}},
	}

	_, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			{UserID: ptrInt64(2), Permission: models.PermissionEditor},
		},
	})
	require.NoError(t, err)

	// user 2 keeps an unchanged grant, only user 3 is notified
	require.Len(t, notify.sent, 1)
	assert.Equal(t, int64(3), notify.sent[0].UserID)
	assert.Equal(t, models.NotifySurveyPermissionChange, notify.sent[0].Type)
}

func TestPermissionUpdateRejectsNarrowingToTeam(t *testing.T) {
	svc, repo, _ := newPermissionFixture()
	repo.grants = []repository.PermissionGrant{
		{SurveyPermission: models.SurveyPermission{SurveyID: 10, UserID: 2, Permission: models.PermissionEditor}},
	}

	_, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			{UserID: ptrInt64(2), RestrictedTeamID: ptrInt64(5), Permission: models.PermissionEditor},
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrBadRequest.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "giới hạn theo team")
}

func TestPermissionUpdateNotifiesChangeNotShare(t *testing.T) {
	svc, repo, notify := newPermissionFixture()
	repo.grants = []repository.PermissionGrant{
		{SurveyPermission: models.SurveyPermission{SurveyID: 10, UserID: 2, Permission: models.PermissionViewer}},
	}

	_, err := svc.Update(context.Background(), 1, 10, dto.SurveyPermissionUpdateRequest{
		TeamAccess: []dto.TeamAccess{
			{UserID: ptrInt64(2), Permission: models.PermissionEditor},
		},
	})
	require.NoError(t, err)
	require.Len(t, notify.sent, 1)
	assert.Equal(t, models.NotifySurveyPermissionChange, notify.sent[0].Type)
}

func TestPermissionGetRequiresManage(t *testing.T) {
	svc, _, _ := newPermissionFixture()

	_, err := svc.Get(context.Background(), 3, 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	res, err := svc.Get(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, res.Warnings)
	assert.Empty(t, res.Warnings)
}
