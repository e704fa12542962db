package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

type questionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	FindByID(ctx context.Context, id int64) (*models.Question, error)
	ListBySurvey(ctx context.Context, surveyID int64) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
}

type questionOptionLister interface {
	ListByQuestion(ctx context.Context, questionID int64) ([]models.Option, error)
}

// QuestionService manages survey questions and their type-specific
// configuration blocks.
type QuestionService struct {
	repo       questionRepository
	options    questionOptionLister
	surveys    permissionSurveyFinder
	permission effectivePermissionFinder
	activity   activityRecorder
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewQuestionService constructs a QuestionService instance.
func NewQuestionService(repo questionRepository, options questionOptionLister, surveys permissionSurveyFinder, permission effectivePermissionFinder, activity activityRecorder, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &QuestionService{repo: repo, options: options, surveys: surveys, permission: permission, activity: activity, validator: validate, logger: logger}
}

// Create adds a question to a survey. The config block must match the
// question type: exactly one for types that carry one, none otherwise.
func (s *QuestionService) Create(ctx context.Context, userID, surveyID int64, req dto.QuestionCreateRequest) (*dto.QuestionDetailResponse, error) {
	if err := validation.Check(s.validator, req, dto.QuestionCreateMessages); err != nil {
		return nil, err
	}

	survey, err := s.requireEdit(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}

	configJSON, err := encodeConfig(req.QuestionType, req.RankingConfig, req.FileUploadConfig, req.DateTimeConfig)
	if err != nil {
		return nil, err
	}

	// Questions are required unless the request says otherwise.
	isRequired := true
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}

	question := &models.Question{
		SurveyID:     surveyID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		IsRequired:   isRequired,
		ConfigJSON:   configJSON,
	}
	if err := s.repo.Create(ctx, question); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tạo câu hỏi")
	}

	s.recordActivity(ctx, userID, models.ActionAddQuestion, question.ID, fmt.Sprintf("Thêm câu hỏi vào khảo sát %q", survey.Title))

	return s.detail(question, survey.Title, []models.Option{})
}

// Get returns a question with its options and decoded config.
func (s *QuestionService) Get(ctx context.Context, userID, questionID int64) (*dto.QuestionDetailResponse, error) {
	question, survey, err := s.loadWithSurvey(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := resolvePermission(ctx, s.permission, survey, userID); err != nil {
		return nil, err
	}

	options, err := s.options.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải tùy chọn")
	}

	return s.detail(question, survey.Title, options)
}

// ListBySurvey returns the survey's questions in display order.
func (s *QuestionService) ListBySurvey(ctx context.Context, userID, surveyID int64) ([]dto.QuestionResponse, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if _, err := resolvePermission(ctx, s.permission, survey, userID); err != nil {
		return nil, err
	}

	questions, err := s.repo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải câu hỏi")
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, dto.NewQuestionResponse(&questions[i], survey.Title))
	}
	return responses, nil
}

// Update applies partial changes to a question. Changing to a type without
// a config block clears the stored one.
func (s *QuestionService) Update(ctx context.Context, userID, questionID int64, req dto.QuestionUpdateRequest) (*dto.QuestionDetailResponse, error) {
	if err := validation.Check(s.validator, req, dto.QuestionUpdateMessages); err != nil {
		return nil, err
	}

	question, survey, err := s.loadWithSurvey(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEdit(ctx, userID, survey.ID); err != nil {
		return nil, err
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.QuestionType != nil && *req.QuestionType != question.QuestionType {
		question.QuestionType = *req.QuestionType
		if !question.QuestionType.HasConfig() {
			question.ConfigJSON = nil
		}
	}
	if req.IsRequired != nil {
		question.IsRequired = *req.IsRequired
	}
	if req.DisplayOrder != nil {
		question.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, question); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể cập nhật câu hỏi")
	}

	s.recordActivity(ctx, userID, models.ActionEditQuestion, question.ID, fmt.Sprintf("Sửa câu hỏi trong khảo sát %q", survey.Title))

	options, err := s.options.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải tùy chọn")
	}
	return s.detail(question, survey.Title, options)
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, userID, questionID int64) error {
	question, survey, err := s.loadWithSurvey(ctx, questionID)
	if err != nil {
		return err
	}
	if _, err := s.requireEdit(ctx, userID, survey.ID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, questionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể xóa câu hỏi")
	}

	s.recordActivity(ctx, userID, models.ActionDeleteQuestion, question.ID, fmt.Sprintf("Xóa câu hỏi khỏi khảo sát %q", survey.Title))
	return nil
}

func (s *QuestionService) requireEdit(ctx context.Context, userID, surveyID int64) (*models.Survey, error) {
	survey, err := s.loadSurvey(ctx, surveyID)
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
	return survey, nil
}

func (s *QuestionService) loadSurvey(ctx context.Context, surveyID int64) (*models.Survey, error) {
	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}
	return survey, nil
}

func (s *QuestionService) loadWithSurvey(ctx context.Context, questionID int64) (*models.Question, *models.Survey, error) {
	question, err := s.repo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy câu hỏi")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải câu hỏi")
	}
	survey, err := s.loadSurvey(ctx, question.SurveyID)
	if err != nil {
		return nil, nil, err
	}
	return question, survey, nil
}

func (s *QuestionService) detail(question *models.Question, surveyTitle string, options []models.Option) (*dto.QuestionDetailResponse, error) {
	res := &dto.QuestionDetailResponse{
		QuestionResponse: dto.NewQuestionResponse(question, surveyTitle),
		Options:          make([]dto.OptionResponse, 0, len(options)),
	}
	for i := range options {
		res.Options = append(res.Options, dto.NewOptionResponse(&options[i], question.QuestionText))
	}

	if question.ConfigJSON == nil {
		return res, nil
	}

	raw := []byte(*question.ConfigJSON)
	switch question.QuestionType {
	case models.QuestionTypeRanking:
		var cfg dto.RankingQuestionConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cấu hình câu hỏi không hợp lệ")
		}
		res.RankingConfig = &cfg
	case models.QuestionTypeFileUpload:
		var cfg dto.FileUploadQuestionConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cấu hình câu hỏi không hợp lệ")
		}
		res.FileUploadConfig = &cfg
	case models.QuestionTypeDateTime:
		var cfg dto.DateTimeQuestionConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cấu hình câu hỏi không hợp lệ")
		}
		res.DateTimeConfig = &cfg
	}

	return res, nil
}

func (s *QuestionService) recordActivity(ctx context.Context, userID int64, action models.ActionType, questionID int64, description string) {
	if s.activity == nil {
		return
	}
	table := "questions"
	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID:      userID,
		ActionType:  action,
		TargetID:    &questionID,
		TargetTable: &table,
		Description: description,
	}); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}

// encodeConfig serializes the config block matching the question type. A
// block supplied for the wrong type is rejected, a missing block for a
// config-carrying type too.
func encodeConfig(qType models.QuestionType, ranking *dto.RankingQuestionConfig, fileUpload *dto.FileUploadQuestionConfig, dateTime *dto.DateTimeQuestionConfig) (*string, error) {
	supplied := 0
	if ranking != nil {
		supplied++
	}
	if fileUpload != nil {
		supplied++
	}
	if dateTime != nil {
		supplied++
	}
	if supplied > 1 {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Chỉ được cung cấp một cấu hình cho câu hỏi")
	}

	var payload interface{}
	switch qType {
	case models.QuestionTypeRanking:
		if ranking == nil {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, "Câu hỏi xếp hạng cần rankingConfig")
		}
		payload = ranking
	case models.QuestionTypeFileUpload:
		if fileUpload == nil {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, "Câu hỏi tải tệp cần fileUploadConfig")
		}
		payload = fileUpload
	case models.QuestionTypeDateTime:
		if dateTime == nil {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, "Câu hỏi ngày giờ cần dateTimeConfig")
		}
		if dateTime.DateFormat == "" {
			dateTime.DateFormat = "dd/MM/yyyy"
		}
		payload = dateTime
	default:
		if supplied > 0 {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Loại câu hỏi %s không nhận cấu hình", qType))
		}
		return nil, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể lưu cấu hình câu hỏi")
	}
	encoded := string(raw)
	return &encoded, nil
}
