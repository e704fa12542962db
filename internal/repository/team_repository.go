package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// TeamRow is a team with its member count joined in.
type TeamRow struct {
	models.Team
	MemberCount int `db:"member_count"`
}

// TeamRepository provides database access for teams and memberships.
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a team and enrolls the owner as its first member.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertTeam = `INSERT INTO teams (name, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING team_id`
	if err := tx.QueryRowxContext(ctx, insertTeam, team.Name, team.OwnerID, team.CreatedAt, team.UpdatedAt).Scan(&team.ID); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	const insertOwner = `INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES ($1, $2, 'owner', $3)`
	if _, err := tx.ExecContext(ctx, insertOwner, team.ID, team.OwnerID, now); err != nil {
		return fmt.Errorf("enroll team owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team: %w", err)
	}
	return nil
}

// FindByID returns a team by identifier.
func (r *TeamRepository) FindByID(ctx context.Context, id int64) (*models.Team, error) {
	const query = `SELECT team_id, name, owner_id, created_at, updated_at FROM teams WHERE team_id = $1 LIMIT 1`
	var team models.Team
	if err := r.db.GetContext(ctx, &team, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find team by id: %w", err)
	}
	return &team, nil
}

// ListByUser returns teams the user belongs to, with member counts.
func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]TeamRow, error) {
	const query = `SELECT t.team_id, t.name, t.owner_id, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM team_members m WHERE m.team_id = t.team_id) AS member_count
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at DESC`
	var teams []TeamRow
	if err := r.db.SelectContext(ctx, &teams, query, userID); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

// AddMember enrolls a user into a team.
func (r *TeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	const query = `INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES (:team_id, :user_id, :role, :joined_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row. It reports whether a row existed.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID int64) (bool, error) {
	const query = `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return false, fmt.Errorf("remove team member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove team member result: %w", err)
	}
	return affected > 0, nil
}

// IsMember reports whether the user belongs to the team.
func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, teamID, userID); err != nil {
		return false, fmt.Errorf("check team membership: %w", err)
	}
	return exists, nil
}

// ListMemberIDs returns the user IDs of all members of a team.
func (r *TeamRepository) ListMemberIDs(ctx context.Context, teamID int64) ([]int64, error) {
	const query = `SELECT user_id FROM team_members WHERE team_id = $1`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, teamID); err != nil {
		return nil, fmt.Errorf("list team member ids: %w", err)
	}
	return ids, nil
}

// CountForUser returns how many teams the user belongs to.
func (r *TeamRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM team_members WHERE user_id = $1`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count teams for user: %w", err)
	}
	return count, nil
}
