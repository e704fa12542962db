package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

func TestNotificationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(2), models.NotifySurveyShared, "Khảo sát được chia sẻ", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(11))

	n := &models.Notification{
		UserID:  2,
		Type:    models.NotifySurveyShared,
		Title:   "Khảo sát được chia sẻ",
		Message: "Bạn được cấp quyền xem",
	}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int64(11), n.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	rows := sqlmock.NewRows([]string{"notification_id", "user_id", "type", "title", "message", "related_entity_type", "related_entity_id", "is_read", "created_at"}).
		AddRow(11, 2, "SURVEY_SHARED", "Khảo sát được chia sẻ", "Bạn được cấp quyền xem", nil, nil, false, time.Now())
	mock.ExpectQuery("SELECT .+ FROM notifications WHERE user_id = .+ ORDER BY created_at DESC LIMIT 20 OFFSET 0").
		WithArgs(int64(2)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE user_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.ListByUser(context.Background(), 2, 0, -5)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryMarkRead(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2")).
		WithArgs(int64(11), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.MarkRead(context.Background(), 11, 2)
	require.NoError(t, err)
	assert.True(t, affected)

	// a foreign user's id matches no row
	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
		WithArgs(int64(11), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err = repo.MarkRead(context.Background(), 11, 3)
	require.NoError(t, err)
	assert.False(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepositoryCreateAssignsOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuestionRepository(db)

	mock.ExpectQuery("INSERT INTO questions").
		WithArgs(int64(10), "Bạn hài lòng chứ?", models.QuestionTypeBoolean, true, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "display_order"}).AddRow(3, 4))

	question := &models.Question{SurveyID: 10, QuestionText: "Bạn hài lòng chứ?", QuestionType: models.QuestionTypeBoolean, IsRequired: true}
	require.NoError(t, repo.Create(context.Background(), question))
	assert.Equal(t, int64(3), question.ID)
	assert.Equal(t, 4, question.DisplayOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}
