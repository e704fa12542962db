package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

func TestResponseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResponseRepository(db)

	userID := int64(2)
	rank := "1"
	optionID := int64(5)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO responses").
		WithArgs(int64(10), int64(2), nil, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"response_id"}).AddRow(77))
	mock.ExpectQuery("INSERT INTO answers").
		WithArgs(int64(77), int64(100), int64(5), "1").
		WillReturnRows(sqlmock.NewRows([]string{"answer_id"}).AddRow(200))
	mock.ExpectQuery("INSERT INTO answers").
		WithArgs(int64(77), int64(103), nil, "Rất tốt").
		WillReturnRows(sqlmock.NewRows([]string{"answer_id"}).AddRow(201))
	mock.ExpectCommit()

	text := "Rất tốt"
	response := &models.Response{SurveyID: 10, UserID: &userID}
	answers := []models.Answer{
		{QuestionID: 100, OptionID: &optionID, AnswerText: &rank},
		{QuestionID: 103, AnswerText: &text},
	}
	err := repo.Create(context.Background(), response, answers)
	require.NoError(t, err)
	assert.Equal(t, int64(77), response.ID)
	assert.Equal(t, int64(200), answers[0].ID)
	assert.Equal(t, int64(77), answers[1].ResponseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseRepositoryCreateRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewResponseRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO responses").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Response{SurveyID: 10}, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
