package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// QuestionAnswerCount pairs one question with its answer count.
type QuestionAnswerCount struct {
	QuestionID   int64               `db:"question_id"`
	QuestionText string              `db:"question_text"`
	QuestionType models.QuestionType `db:"question_type"`
	AnswerCount  int64               `db:"answer_count"`
}

// StatisticsRepository provides aggregate queries over survey responses.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository creates a new instance of StatisticsRepository.
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// CountQuestions returns the number of questions in a survey.
func (r *StatisticsRepository) CountQuestions(ctx context.Context, surveyID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM questions WHERE survey_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, surveyID); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

// CountResponses returns the number of responses submitted for a survey.
func (r *StatisticsRepository) CountResponses(ctx context.Context, surveyID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM responses WHERE survey_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, surveyID); err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return count, nil
}

// AnswerCountsByQuestion returns per-question answer counts in display order.
func (r *StatisticsRepository) AnswerCountsByQuestion(ctx context.Context, surveyID int64) ([]QuestionAnswerCount, error) {
	const query = `SELECT q.question_id, q.question_text, q.question_type,
			(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.question_id) AS answer_count
		FROM questions q
		WHERE q.survey_id = $1
		ORDER BY q.display_order ASC`
	var counts []QuestionAnswerCount
	if err := r.db.SelectContext(ctx, &counts, query, surveyID); err != nil {
		return nil, fmt.Errorf("answer counts by question: %w", err)
	}
	return counts, nil
}
