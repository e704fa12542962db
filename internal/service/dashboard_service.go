package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/repository"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
)

type dashboardSurveyCounter interface {
	CountOwned(ctx context.Context, userID int64) (int64, error)
	CountOwnedByStatus(ctx context.Context, userID int64, status models.SurveyStatus) (int64, error)
	CountResponsesForOwner(ctx context.Context, userID int64) (int64, error)
}

type dashboardPermissionReader interface {
	CountSharedWithUser(ctx context.Context, userID int64) (int64, error)
	ListSharedWithUser(ctx context.Context, userID int64) ([]repository.SharedSurveyRow, error)
}

type dashboardTeamCounter interface {
	CountForUser(ctx context.Context, userID int64) (int64, error)
}

type dashboardActivityReader interface {
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]models.ActivityLog, error)
}

// dashboardCacheKey names the cached summary of one user.
func dashboardCacheKey(userID int64) string {
	return fmt.Sprintf("dashboard:user:%d", userID)
}

// DashboardService aggregates the per-user dashboard summary, cached per
// user for a short TTL.
type DashboardService struct {
	surveys     dashboardSurveyCounter
	permissions dashboardPermissionReader
	teams       dashboardTeamCounter
	activity    dashboardActivityReader
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(surveys dashboardSurveyCounter, permissions dashboardPermissionReader, teams dashboardTeamCounter, activity dashboardActivityReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{surveys: surveys, permissions: permissions, teams: teams, activity: activity, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns the user's dashboard. A user with no data gets zeros and
// empty lists, never an error or null collections.
func (s *DashboardService) Summary(ctx context.Context, userID int64) (*dto.DashboardSummary, error) {
	key := dashboardCacheKey(userID)
	if s.cache != nil {
		var cached dto.DashboardSummary
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	owned, err := s.surveys.CountOwned(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	shared, err := s.permissions.CountSharedWithUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	active, err := s.surveys.CountOwnedByStatus(ctx, userID, models.SurveyStatusPublished)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	responses, err := s.surveys.CountResponsesForOwner(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	teams, err := s.teams.CountForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}

	sharedRows, err := s.permissions.ListSharedWithUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	sharedDetail := make([]dto.SharedSurvey, 0, len(sharedRows))
	for _, row := range sharedRows {
		sharedDetail = append(sharedDetail, dto.SharedSurvey{
			SurveyID:   row.SurveyID,
			Title:      row.Title,
			Permission: string(row.Permission),
			SharedVia:  row.SharedVia,
		})
	}

	entries, err := s.activity.ListRecentByUser(ctx, userID, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tổng hợp dashboard")
	}
	recent := make([]dto.Activity, 0, len(entries))
	for _, e := range entries {
		recent = append(recent, dto.Activity{
			ActionType:  string(e.ActionType),
			Description: e.Description,
			TargetID:    e.TargetID,
			TargetTable: e.TargetTable,
			CreatedAt:   e.CreatedAt,
		})
	}

	summary := &dto.DashboardSummary{
		OwnedSurveys:        owned,
		SharedSurveys:       shared,
		TotalSurveys:        owned + shared,
		ActiveSurveys:       active,
		TotalResponses:      responses,
		TotalTeams:          teams,
		SharedSurveysDetail: sharedDetail,
		RecentActivity:      recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	return summary, nil
}
