package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// PermissionGrant is a survey permission joined with grantee and grantor
// display fields.
type PermissionGrant struct {
	models.SurveyPermission
	Email              string  `db:"email"`
	FullName           string  `db:"full_name"`
	GrantedByName      string  `db:"granted_by_name"`
	RestrictedTeamName *string `db:"restricted_team_name"`
}

// SharedSurveyRow is one survey shared with a user, with how the grant
// reaches them.
type SharedSurveyRow struct {
	SurveyID   int64                       `db:"survey_id"`
	Title      string                      `db:"title"`
	Permission models.SurveyPermissionRole `db:"permission"`
	SharedVia  string                      `db:"shared_via"`
}

// PermissionRepository provides database access for survey sharing grants.
type PermissionRepository struct {
	db *sqlx.DB
}

// NewPermissionRepository creates a new instance of PermissionRepository.
func NewPermissionRepository(db *sqlx.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// ListBySurvey returns the grants on a survey with display fields joined in.
func (r *PermissionRepository) ListBySurvey(ctx context.Context, surveyID int64) ([]PermissionGrant, error) {
	const query = `SELECT sp.permission_id, sp.survey_id, sp.user_id, sp.restricted_team_id, sp.permission, sp.granted_by, sp.created_at, sp.updated_at,
			u.email, u.full_name, g.full_name AS granted_by_name, t.name AS restricted_team_name
		FROM survey_permissions sp
		JOIN users u ON u.user_id = sp.user_id
		JOIN users g ON g.user_id = sp.granted_by
		LEFT JOIN teams t ON t.team_id = sp.restricted_team_id
		WHERE sp.survey_id = $1
		ORDER BY sp.created_at ASC`
	var grants []PermissionGrant
	if err := r.db.SelectContext(ctx, &grants, query, surveyID); err != nil {
		return nil, fmt.Errorf("list survey permissions: %w", err)
	}
	return grants, nil
}

// FindEffective returns the grant a user currently holds on a survey. A
// team-scoped grant only applies while the user is a member of the team.
func (r *PermissionRepository) FindEffective(ctx context.Context, surveyID, userID int64) (*models.SurveyPermission, error) {
	const query = `SELECT sp.permission_id, sp.survey_id, sp.user_id, sp.restricted_team_id, sp.permission, sp.granted_by, sp.created_at, sp.updated_at
		FROM survey_permissions sp
		LEFT JOIN team_members tm ON tm.team_id = sp.restricted_team_id AND tm.user_id = sp.user_id
		WHERE sp.survey_id = $1 AND sp.user_id = $2
		AND (sp.restricted_team_id IS NULL OR tm.user_id IS NOT NULL)
		LIMIT 1`
	var grant models.SurveyPermission
	if err := r.db.GetContext(ctx, &grant, query, surveyID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find effective permission: %w", err)
	}
	return &grant, nil
}

// HasTeamRestrictedGrant reports whether any grant on the survey is
// team-scoped.
func (r *PermissionRepository) HasTeamRestrictedGrant(ctx context.Context, surveyID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM survey_permissions WHERE survey_id = $1 AND restricted_team_id IS NOT NULL)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, surveyID); err != nil {
		return false, fmt.Errorf("check team restricted grants: %w", err)
	}
	return exists, nil
}

// ReplaceAll swaps the complete grant list of a survey in one transaction.
func (r *PermissionRepository) ReplaceAll(ctx context.Context, surveyID int64, grants []models.SurveyPermission) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace permissions: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM survey_permissions WHERE survey_id = $1`, surveyID); err != nil {
		return fmt.Errorf("clear survey permissions: %w", err)
	}

	const insert = `INSERT INTO survey_permissions (survey_id, user_id, restricted_team_id, permission, granted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now().UTC()
	for i := range grants {
		g := &grants[i]
		g.SurveyID = surveyID
		g.CreatedAt = now
		g.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, insert, g.SurveyID, g.UserID, g.RestrictedTeamID, g.Permission, g.GrantedBy, g.CreatedAt, g.UpdatedAt); err != nil {
			return fmt.Errorf("insert survey permission: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace permissions: %w", err)
	}
	return nil
}

// CountSharedWithUser returns how many surveys are currently shared with
// the user.
func (r *PermissionRepository) CountSharedWithUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(DISTINCT sp.survey_id)
		FROM survey_permissions sp
		LEFT JOIN team_members tm ON tm.team_id = sp.restricted_team_id AND tm.user_id = sp.user_id
		WHERE sp.user_id = $1
		AND (sp.restricted_team_id IS NULL OR tm.user_id IS NOT NULL)`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count shared surveys: %w", err)
	}
	return count, nil
}

// ListSharedWithUser returns surveys shared with the user for the dashboard
// detail list.
func (r *PermissionRepository) ListSharedWithUser(ctx context.Context, userID int64) ([]SharedSurveyRow, error) {
	const query = `SELECT s.survey_id, s.title, sp.permission,
			CASE WHEN sp.restricted_team_id IS NULL THEN 'user' ELSE 'team' END AS shared_via
		FROM survey_permissions sp
		JOIN surveys s ON s.survey_id = sp.survey_id
		LEFT JOIN team_members tm ON tm.team_id = sp.restricted_team_id AND tm.user_id = sp.user_id
		WHERE sp.user_id = $1
		AND (sp.restricted_team_id IS NULL OR tm.user_id IS NOT NULL)
		ORDER BY sp.updated_at DESC`
	var rows []SharedSurveyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list shared surveys: %w", err)
	}
	return rows, nil
}
