package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// ActivityRepository provides database access for the activity log.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts an activity entry.
func (r *ActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO activity_log (user_id, action_type, target_id, target_table, description, created_at)
		VALUES (:user_id, :action_type, :target_id, :target_table, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create activity entry: %w", err)
	}
	return nil
}

// ListRecentByUser returns the user's newest activity entries.
func (r *ActivityRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT log_id, user_id, action_type, target_id, target_table, description, created_at
		FROM activity_log WHERE user_id = $1 ORDER BY created_at DESC LIMIT %d`, limit)
	var entries []models.ActivityLog
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	return entries, nil
}
