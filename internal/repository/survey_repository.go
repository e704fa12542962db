package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// SurveyRepository provides database access for surveys.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository creates a new instance of SurveyRepository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

const surveyColumns = `s.survey_id, s.user_id, s.title, s.description, s.category_id, c.category_name, s.ai_prompt, s.status, s.created_at, s.updated_at`

const surveyJoin = `FROM surveys s LEFT JOIN categories c ON c.category_id = s.category_id`

// Create inserts a survey and fills in the generated identifier.
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	const query = `INSERT INTO surveys (user_id, title, description, category_id, ai_prompt, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING survey_id`
	if err := r.db.QueryRowxContext(ctx, query,
		survey.UserID, survey.Title, survey.Description, survey.CategoryID, survey.AiPrompt, survey.Status, survey.CreatedAt, survey.UpdatedAt,
	).Scan(&survey.ID); err != nil {
		return fmt.Errorf("create survey: %w", err)
	}
	return nil
}

// FindByID returns a survey with its category name joined in.
func (r *SurveyRepository) FindByID(ctx context.Context, id int64) (*models.Survey, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE s.survey_id = $1 LIMIT 1`, surveyColumns, surveyJoin)
	var survey models.Survey
	if err := r.db.GetContext(ctx, &survey, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find survey by id: %w", err)
	}
	return &survey, nil
}

// ListAccessible returns surveys the user owns or holds a grant on. A
// team-scoped grant only counts while the user is a member of the team.
func (r *SurveyRepository) ListAccessible(ctx context.Context, userID int64, filter models.SurveyFilter) ([]models.Survey, int, error) {
	baseQuery := fmt.Sprintf(`%s WHERE (s.user_id = $1 OR EXISTS (
		SELECT 1 FROM survey_permissions sp
		LEFT JOIN team_members tm ON tm.team_id = sp.restricted_team_id AND tm.user_id = sp.user_id
		WHERE sp.survey_id = s.survey_id AND sp.user_id = $1
		AND (sp.restricted_team_id IS NULL OR tm.user_id IS NOT NULL)
	))`, surveyJoin)
	args := []interface{}{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		baseQuery += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		baseQuery += fmt.Sprintf(" AND LOWER(s.title) LIKE $%d", len(args))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY s.created_at DESC LIMIT %d OFFSET %d", surveyColumns, baseQuery, pageSize, offset)

	var surveys []models.Survey
	if err := r.db.SelectContext(ctx, &surveys, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list surveys: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count surveys: %w", err)
	}

	return surveys, total, nil
}

// Update updates mutable survey fields.
func (r *SurveyRepository) Update(ctx context.Context, survey *models.Survey) error {
	survey.UpdatedAt = time.Now().UTC()
	const query = `UPDATE surveys SET title = :title, description = :description, category_id = :category_id, ai_prompt = :ai_prompt, status = :status, updated_at = :updated_at WHERE survey_id = :survey_id`
	if _, err := r.db.NamedExecContext(ctx, query, survey); err != nil {
		return fmt.Errorf("update survey: %w", err)
	}
	return nil
}

// Delete removes a survey. Dependent rows cascade at the schema level.
func (r *SurveyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM surveys WHERE survey_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	return nil
}

// CountOwned returns the number of surveys owned by the user.
func (r *SurveyRepository) CountOwned(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM surveys WHERE user_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count owned surveys: %w", err)
	}
	return count, nil
}

// CountOwnedByStatus returns the number of owned surveys in the given status.
func (r *SurveyRepository) CountOwnedByStatus(ctx context.Context, userID int64, status models.SurveyStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM surveys WHERE user_id = $1 AND status = $2`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID, status); err != nil {
		return 0, fmt.Errorf("count owned surveys by status: %w", err)
	}
	return count, nil
}

// CountResponsesForOwner returns total responses across the user's surveys.
func (r *SurveyRepository) CountResponsesForOwner(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM responses r JOIN surveys s ON s.survey_id = r.survey_id WHERE s.user_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count responses for owner: %w", err)
	}
	return count, nil
}
