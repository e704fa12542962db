package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

func TestPermissionRepositoryFindEffective(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	rows := sqlmock.NewRows([]string{"permission_id", "survey_id", "user_id", "restricted_team_id", "permission", "granted_by", "created_at", "updated_at"}).
		AddRow(1, 10, 2, nil, "EDITOR", 1, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM survey_permissions sp\\s+LEFT JOIN team_members tm").
		WithArgs(int64(10), int64(2)).
		WillReturnRows(rows)

	grant, err := repo.FindEffective(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionEditor, grant.Permission)
	assert.Nil(t, grant.RestrictedTeamID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryFindEffectiveNoGrant(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectQuery("SELECT .+ FROM survey_permissions sp").
		WithArgs(int64(10), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"permission_id"}))

	_, err := repo.FindEffective(context.Background(), 10, 9)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM survey_permissions WHERE survey_id = $1")).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO survey_permissions").
		WithArgs(int64(10), int64(2), nil, models.PermissionEditor, int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO survey_permissions").
		WithArgs(int64(10), int64(3), int64(5), models.PermissionViewer, int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	teamID := int64(5)
	err := repo.ReplaceAll(context.Background(), 10, []models.SurveyPermission{
		{UserID: 2, Permission: models.PermissionEditor, GrantedBy: 1},
		{UserID: 3, RestrictedTeamID: &teamID, Permission: models.PermissionViewer, GrantedBy: 1},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryReplaceAllEmptyRevokes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM survey_permissions").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), 10, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryReplaceAllRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM survey_permissions").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO survey_permissions").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), 10, []models.SurveyPermission{
		{UserID: 2, Permission: models.PermissionEditor, GrantedBy: 1},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepositoryListSharedWithUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPermissionRepository(db)

	rows := sqlmock.NewRows([]string{"survey_id", "title", "permission", "shared_via"}).
		AddRow(10, "Khảo sát nhân sự", "VIEWER", "team").
		AddRow(11, "Khảo sát khách hàng", "ANALYST", "user")
	mock.ExpectQuery("SELECT s.survey_id, s.title, sp.permission").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	shared, err := repo.ListSharedWithUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, shared, 2)
	assert.Equal(t, "team", shared[0].SharedVia)
	assert.Equal(t, models.PermissionAnalyst, shared[1].Permission)
	assert.NoError(t, mock.ExpectationsWereMet())
}
