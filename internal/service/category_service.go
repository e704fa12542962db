package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// CategoryService manages survey categories.
type CategoryService struct {
	repo      categoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs a CategoryService instance.
func NewCategoryService(repo categoryRepository, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &CategoryService{repo: repo, validator: validate, logger: logger}
}

// Create adds a category owned by the calling user.
func (s *CategoryService) Create(ctx context.Context, userID int64, req dto.CategoryRequest) (*models.Category, error) {
	if err := validation.Check(s.validator, req, dto.CategoryMessages); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID:       userID,
		CategoryName: req.CategoryName,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo danh mục")
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh mục")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Update renames a category. Only the owner may rename it.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID int64, req dto.CategoryRequest) (*models.Category, error) {
	if err := validation.Check(s.validator, req, dto.CategoryMessages); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy danh mục")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh mục")
	}

	if category.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền sửa danh mục này")
	}

	category.CategoryName = req.CategoryName
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể cập nhật danh mục")
	}
	return category, nil
}

// Delete removes a category. Only the owner may delete it; surveys that
// referenced the category keep working without one.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID int64) error {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy danh mục")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải danh mục")
	}

	if category.UserID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền xóa danh mục này")
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xóa danh mục")
	}
	return nil
}
