package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

type surveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	FindByID(ctx context.Context, id int64) (*models.Survey, error)
	ListAccessible(ctx context.Context, userID int64, filter models.SurveyFilter) ([]models.Survey, int, error)
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id int64) error
}

type effectivePermissionFinder interface {
	FindEffective(ctx context.Context, surveyID, userID int64) (*models.SurveyPermission, error)
}

type surveyCategoryFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Category, error)
}

// SurveyService manages survey lifecycle and access resolution.
type SurveyService struct {
	repo       surveyRepository
	permission effectivePermissionFinder
	categories surveyCategoryFinder
	activity   activityRecorder
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSurveyService constructs a SurveyService instance.
func NewSurveyService(repo surveyRepository, permission effectivePermissionFinder, categories surveyCategoryFinder, activity activityRecorder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SurveyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &SurveyService{repo: repo, permission: permission, categories: categories, activity: activity, cache: cache, validator: validate, logger: logger}
}

// ResolvePermission returns the level a user holds on a survey. The owner
// always resolves to OWNER regardless of stored grants.
func (s *SurveyService) ResolvePermission(ctx context.Context, survey *models.Survey, userID int64) (models.SurveyPermissionRole, error) {
	return resolvePermission(ctx, s.permission, survey, userID)
}

// Create adds a survey in draft status owned by the calling user.
func (s *SurveyService) Create(ctx context.Context, userID int64, req dto.SurveyCreateRequest) (*models.Survey, error) {
	if err := validation.Check(s.validator, req, dto.SurveyCreateMessages); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrBadRequest, "Danh mục không tồn tại")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra danh mục")
		}
	}

	survey := &models.Survey{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AiPrompt:    req.AiPrompt,
		Status:      models.SurveyStatusDraft,
	}
	if err := s.repo.Create(ctx, survey); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo khảo sát")
	}

	s.recordActivity(ctx, userID, models.ActionCreateSurvey, survey.ID, fmt.Sprintf("Tạo khảo sát %q", survey.Title))
	s.invalidateDashboard(ctx, userID)

	return survey, nil
}

// List returns surveys the user owns or is granted access to.
func (s *SurveyService) List(ctx context.Context, userID int64, filter models.SurveyFilter) ([]models.Survey, *models.Pagination, error) {
	surveys, total, err := s.repo.ListAccessible(ctx, userID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh sách khảo sát")
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return surveys, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a survey when the user may at least view it.
func (s *SurveyService) Get(ctx context.Context, userID, surveyID int64) (*models.Survey, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ResolvePermission(ctx, survey, userID); err != nil {
		return nil, err
	}
	return survey, nil
}

// Update applies partial changes to a survey. Requires edit permission.
func (s *SurveyService) Update(ctx context.Context, userID, surveyID int64, req dto.SurveyUpdateRequest) (*models.Survey, error) {
	if err := validation.Check(s.validator, req, dto.SurveyUpdateMessages); err != nil {
		return nil, err
	}

	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	level, err := s.ResolvePermission(ctx, survey, userID)
	if err != nil {
		return nil, err
	}
	if !level.CanEditSurvey() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền chỉnh sửa khảo sát này")
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrBadRequest, "Danh mục không tồn tại")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể kiểm tra danh mục")
		}
		survey.CategoryID = req.CategoryID
	}
	if req.Title != nil {
		survey.Title = *req.Title
	}
	if req.Description != nil {
		survey.Description = req.Description
	}
	if req.AiPrompt != nil {
		survey.AiPrompt = req.AiPrompt
	}
	if req.Status != nil {
		survey.Status = *req.Status
	}

	if err := s.repo.Update(ctx, survey); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể cập nhật khảo sát")
	}

	s.recordActivity(ctx, userID, models.ActionEditSurvey, survey.ID, fmt.Sprintf("Cập nhật khảo sát %q", survey.Title))
	s.invalidateDashboard(ctx, survey.UserID)

	// stale category_name after a category switch; reload for the joined value
	return s.loadSurvey(ctx, surveyID)
}

// Delete removes a survey. Only the owner may delete it.
func (s *SurveyService) Delete(ctx context.Context, userID, surveyID int64) error {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return err
	}

	level, err := s.ResolvePermission(ctx, survey, userID)
	if err != nil {
		return err
	}
	if !level.CanDeleteSurvey() {
		return appErrors.Clone(appErrors.ErrForbidden, "Chỉ chủ sở hữu mới được xóa khảo sát")
	}

	if err := s.repo.Delete(ctx, surveyID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xóa khảo sát")
	}

	s.recordActivity(ctx, userID, models.ActionDeleteSurvey, surveyID, fmt.Sprintf("Xóa khảo sát %q", survey.Title))
	s.invalidateDashboard(ctx, survey.UserID)
	return nil
}

func (s *SurveyService) loadSurvey(ctx context.Context, surveyID int64) (*models.Survey, error) {
	survey, err := s.repo.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}
	return survey, nil
}

func (s *SurveyService) recordActivity(ctx context.Context, userID int64, action models.ActionType, surveyID int64, description string) {
	if s.activity == nil {
		return
	}
	table := "surveys"
	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID:      userID,
		ActionType:  action,
		TargetID:    &surveyID,
		TargetTable: &table,
		Description: description,
	}); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}

func (s *SurveyService) invalidateDashboard(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCacheKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Int64("user_id", userID), zap.Error(err))
	}
}
