package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// QuestionRepository provides database access for survey questions.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a new instance of QuestionRepository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `question_id, survey_id, question_text, question_type, is_required, display_order, question_config, created_at, updated_at`

// Create inserts a question at the end of the survey's display order.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	const query = `INSERT INTO questions (survey_id, question_text, question_type, is_required, display_order, question_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(display_order), 0) + 1 FROM questions WHERE survey_id = $1),
			$5, $6, $7)
		RETURNING question_id, display_order`
	if err := r.db.QueryRowxContext(ctx, query,
		question.SurveyID, question.QuestionText, question.QuestionType, question.IsRequired, question.ConfigJSON, question.CreatedAt, question.UpdatedAt,
	).Scan(&question.ID, &question.DisplayOrder); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// FindByID returns a question by identifier.
func (r *QuestionRepository) FindByID(ctx context.Context, id int64) (*models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE question_id = $1 LIMIT 1`, questionColumns)
	var question models.Question
	if err := r.db.GetContext(ctx, &question, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find question by id: %w", err)
	}
	return &question, nil
}

// ListBySurvey returns all questions of a survey in display order.
func (r *QuestionRepository) ListBySurvey(ctx context.Context, surveyID int64) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE survey_id = $1 ORDER BY display_order ASC`, questionColumns)
	var questions []models.Question
	if err := r.db.SelectContext(ctx, &questions, query, surveyID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// Update updates mutable question fields.
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	question.UpdatedAt = time.Now().UTC()
	const query = `UPDATE questions SET question_text = :question_text, question_type = :question_type, is_required = :is_required, display_order = :display_order, question_config = :question_config, updated_at = :updated_at WHERE question_id = :question_id`
	if _, err := r.db.NamedExecContext(ctx, query, question); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

// Delete removes a question. Options cascade at the schema level.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM questions WHERE question_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}
