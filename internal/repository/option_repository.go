package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// OptionRepository provides database access for answer options.
type OptionRepository struct {
	db *sqlx.DB
}

// NewOptionRepository creates a new instance of OptionRepository.
func NewOptionRepository(db *sqlx.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

// Create inserts an option and fills in the generated identifier.
func (r *OptionRepository) Create(ctx context.Context, option *models.Option) error {
	now := time.Now().UTC()
	option.CreatedAt = now
	option.UpdatedAt = now

	const query = `INSERT INTO options (question_id, option_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING option_id`
	if err := r.db.QueryRowxContext(ctx, query,
		option.QuestionID, option.OptionText, option.CreatedAt, option.UpdatedAt,
	).Scan(&option.ID); err != nil {
		return fmt.Errorf("create option: %w", err)
	}
	return nil
}

// FindByID returns an option by identifier.
func (r *OptionRepository) FindByID(ctx context.Context, id int64) (*models.Option, error) {
	const query = `SELECT option_id, question_id, option_text, created_at, updated_at FROM options WHERE option_id = $1 LIMIT 1`
	var option models.Option
	if err := r.db.GetContext(ctx, &option, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find option by id: %w", err)
	}
	return &option, nil
}

// ListByQuestion returns all options of a question in insertion order.
func (r *OptionRepository) ListByQuestion(ctx context.Context, questionID int64) ([]models.Option, error) {
	const query = `SELECT option_id, question_id, option_text, created_at, updated_at FROM options WHERE question_id = $1 ORDER BY option_id ASC`
	var options []models.Option
	if err := r.db.SelectContext(ctx, &options, query, questionID); err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return options, nil
}

// Update renames an option.
func (r *OptionRepository) Update(ctx context.Context, option *models.Option) error {
	option.UpdatedAt = time.Now().UTC()
	const query = `UPDATE options SET option_text = :option_text, updated_at = :updated_at WHERE option_id = :option_id`
	if _, err := r.db.NamedExecContext(ctx, query, option); err != nil {
		return fmt.Errorf("update option: %w", err)
	}
	return nil
}

// Delete removes an option.
func (r *OptionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM options WHERE option_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete option: %w", err)
	}
	return nil
}
