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

type optionRepository interface {
	Create(ctx context.Context, option *models.Option) error
	FindByID(ctx context.Context, id int64) (*models.Option, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]models.Option, error)
	Update(ctx context.Context, option *models.Option) error
	Delete(ctx context.Context, id int64) error
}

type optionQuestionFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Question, error)
}

// OptionService manages answer options of multiple-choice questions.
type OptionService struct {
	repo       optionRepository
	questions  optionQuestionFinder
	surveys    permissionSurveyFinder
	permission effectivePermissionFinder
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewOptionService constructs an OptionService instance.
func NewOptionService(repo optionRepository, questions optionQuestionFinder, surveys permissionSurveyFinder, permission effectivePermissionFinder, validate *validator.Validate, logger *zap.Logger) *OptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &OptionService{repo: repo, questions: questions, surveys: surveys, permission: permission, validator: validate, logger: logger}
}

// Create adds an option to a question.
func (s *OptionService) Create(ctx context.Context, userID int64, req dto.OptionCreateRequest) (*dto.OptionResponse, error) {
	if err := validation.Check(s.validator, req, dto.OptionCreateMessages); err != nil {
		return nil, err
	}

	question, err := s.requireEdit(ctx, userID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	option := &models.Option{
		QuestionID: req.QuestionID,
		OptionText: req.OptionText,
	}
	if err := s.repo.Create(ctx, option); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo tùy chọn")
	}

	res := dto.NewOptionResponse(option, question.QuestionText)
	return &res, nil
}

// ListByQuestion returns the options of a question.
func (s *OptionService) ListByQuestion(ctx context.Context, userID, questionID int64) ([]dto.OptionResponse, error) {
	question, err := s.loadQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	survey, err := s.loadSurvey(ctx, question.SurveyID)
	if err != nil {
		return nil, err
	}
	if _, err := resolvePermission(ctx, s.permission, survey, userID); err != nil {
		return nil, err
	}

	options, err := s.repo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải tùy chọn")
	}

	responses := make([]dto.OptionResponse, 0, len(options))
	for i := range options {
		responses = append(responses, dto.NewOptionResponse(&options[i], question.QuestionText))
	}
	return responses, nil
}

// Update renames an option.
func (s *OptionService) Update(ctx context.Context, userID, optionID int64, req dto.OptionUpdateRequest) (*dto.OptionResponse, error) {
	if err := validation.Check(s.validator, req, dto.OptionUpdateMessages); err != nil {
		return nil, err
	}

	option, err := s.loadOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	question, err := s.requireEdit(ctx, userID, option.QuestionID)
	if err != nil {
		return nil, err
	}

	option.OptionText = req.OptionText
	if err := s.repo.Update(ctx, option); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể cập nhật tùy chọn")
	}

	res := dto.NewOptionResponse(option, question.QuestionText)
	return &res, nil
}

// Delete removes an option.
func (s *OptionService) Delete(ctx context.Context, userID, optionID int64) error {
	option, err := s.loadOption(ctx, optionID)
	if err != nil {
		return err
	}
	if _, err := s.requireEdit(ctx, userID, option.QuestionID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, optionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xóa tùy chọn")
	}
	return nil
}

func (s *OptionService) requireEdit(ctx context.Context, userID, questionID int64) (*models.Question, error) {
	question, err := s.loadQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	survey, err := s.loadSurvey(ctx, question.SurveyID)
	if err != nil {
		return nil, err
	}
	level, err := resolvePermission(ctx, s.permission, survey, userID)
	if err != nil {
		return nil, err
	}
	if !level.CanEditSurvey() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Bạn không có quyền chỉnh sửa khảo sát này")
	}
	return question, nil
}

func (s *OptionService) loadQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy câu hỏi")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải câu hỏi")
	}
	return question, nil
}

func (s *OptionService) loadSurvey(ctx context.Context, surveyID int64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}
	return survey, nil
}

func (s *OptionService) loadOption(ctx context.Context, optionID int64) (*models.Option, error) {
	option, err := s.repo.FindByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy tùy chọn")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải tùy chọn")
	}
	return option, nil
}
