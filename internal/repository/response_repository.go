package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// ResponseRepository persists survey responses and their answer rows.
type ResponseRepository struct {
	db *sqlx.DB
}

// NewResponseRepository creates a ResponseRepository.
func NewResponseRepository(db *sqlx.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create inserts a response and all of its answers in one transaction.
// The generated ids are written back into the passed structs.
func (r *ResponseRepository) Create(ctx context.Context, response *models.Response, answers []models.Answer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create response: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertResponse = `INSERT INTO responses (survey_id, user_id, request_token, duration_seconds, submitted_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING response_id`
	response.SubmittedAt = time.Now().UTC()
	if err := tx.GetContext(ctx, &response.ID, insertResponse,
		response.SurveyID, response.UserID, response.RequestToken, response.DurationSeconds, response.SubmittedAt); err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	const insertAnswer = `INSERT INTO answers (response_id, question_id, option_id, answer_text)
		VALUES ($1, $2, $3, $4) RETURNING answer_id`
	for i := range answers {
		a := &answers[i]
		a.ResponseID = response.ID
		if err := tx.GetContext(ctx, &a.ID, insertAnswer, a.ResponseID, a.QuestionID, a.OptionID, a.AnswerText); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create response: %w", err)
	}
	return nil
}
