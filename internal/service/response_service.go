package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/dto"
	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
	appErrors "github.com/gwynnn297/SmartSurvey-sub001/pkg/errors"
	"github.com/gwynnn297/SmartSurvey-sub001/pkg/validation"
)

type responseRepository interface {
	Create(ctx context.Context, response *models.Response, answers []models.Answer) error
}

type responseQuestionLister interface {
	ListBySurvey(ctx context.Context, surveyID int64) ([]models.Question, error)
}

// ResponseService accepts submissions against published surveys.
// Respondents do not need an account: UserID stays nil for anonymous
// submissions.
type ResponseService struct {
	repo      responseRepository
	surveys   permissionSurveyFinder
	questions responseQuestionLister
	options   questionOptionLister
	activity  activityRecorder
	notify    notifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResponseService constructs a ResponseService instance.
func NewResponseService(repo responseRepository, surveys permissionSurveyFinder, questions responseQuestionLister, options questionOptionLister, activity activityRecorder, notify notifier, validate *validator.Validate, logger *zap.Logger) *ResponseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &ResponseService{repo: repo, surveys: surveys, questions: questions, options: options, activity: activity, notify: notify, validator: validate, logger: logger}
}

// Submit stores a response for a survey. Only published surveys accept
// submissions. Required questions may be left out: partial responses
// are stored as-is.
func (s *ResponseService) Submit(ctx context.Context, userID *int64, surveyID int64, req dto.ResponseSubmitRequest) (*dto.ResponseSubmitResult, error) {
	if err := validation.Check(s.validator, req, dto.ResponseSubmitMessages); err != nil {
		return nil, err
	}

	survey, err := s.surveys.FindByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Không tìm thấy khảo sát")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải khảo sát")
	}

	switch survey.Status {
	case models.SurveyStatusPublished:
	case models.SurveyStatusDraft:
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Khảo sát đang ở trạng thái bản nháp, chưa thể nộp phản hồi")
	case models.SurveyStatusArchived:
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Khảo sát đã được lưu trữ, không thể nộp phản hồi")
	default:
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Khảo sát chưa sẵn sàng nhận phản hồi")
	}

	questions, err := s.questions.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải câu hỏi")
	}
	if len(questions) == 0 {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Khảo sát chưa có câu hỏi")
	}

	byID := make(map[int64]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	optionCache := make(map[int64][]models.Option)
	answers := make([]models.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		question, ok := byID[a.QuestionID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("questionId không thuộc khảo sát: %d", a.QuestionID))
		}

		options, err := s.questionOptions(ctx, optionCache, question.ID)
		if err != nil {
			return nil, err
		}

		rows, err := buildAnswerRows(question, options, a)
		if err != nil {
			return nil, err
		}
		answers = append(answers, rows...)
	}

	record := &models.Response{
		SurveyID:        surveyID,
		UserID:          userID,
		RequestToken:    req.RequestToken,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.repo.Create(ctx, record, answers); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể lưu phản hồi")
	}

	if userID != nil {
		s.recordActivity(ctx, *userID, record.ID)
	}
	s.notifyOwner(ctx, survey)

	return &dto.ResponseSubmitResult{
		ResponseID:  record.ID,
		SurveyID:    surveyID,
		AnswerCount: len(answers),
		SubmittedAt: record.SubmittedAt,
	}, nil
}

func (s *ResponseService) questionOptions(ctx context.Context, cache map[int64][]models.Option, questionID int64) ([]models.Option, error) {
	if options, ok := cache[questionID]; ok {
		return options, nil
	}
	options, err := s.options.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "không thể tải lựa chọn")
	}
	cache[questionID] = options
	return options, nil
}

// buildAnswerRows turns one submitted answer into the rows to persist.
// Multiple-choice and ranking answers expand into one row per selected
// option.
func buildAnswerRows(question *models.Question, options []models.Option, a dto.AnswerSubmit) ([]models.Answer, error) {
	switch question.QuestionType {
	case models.QuestionTypeMultipleChoice:
		return buildMultipleChoiceRows(question, options, a)
	case models.QuestionTypeRanking:
		return buildRankingRows(question, options, a)
	case models.QuestionTypeRating, models.QuestionTypeBoolean:
		row, err := buildChoiceRow(question, options, a)
		if err != nil {
			return nil, err
		}
		return []models.Answer{*row}, nil
	default:
		// open_ended, date_time and file_upload keep the raw text.
		return []models.Answer{{QuestionID: question.ID, AnswerText: a.AnswerText}}, nil
	}
}

func buildMultipleChoiceRows(question *models.Question, options []models.Option, a dto.AnswerSubmit) ([]models.Answer, error) {
	if len(a.SelectedOptionIDs) > 0 {
		rows := make([]models.Answer, 0, len(a.SelectedOptionIDs))
		for _, optionID := range a.SelectedOptionIDs {
			id := optionID
			if !optionBelongs(options, id) {
				return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Không tìm thấy optionId: %d", id))
			}
			rows = append(rows, models.Answer{QuestionID: question.ID, OptionID: &id})
		}
		return rows, nil
	}
	if len(a.SelectedOptions) > 0 {
		rows := make([]models.Answer, 0, len(a.SelectedOptions))
		for _, text := range a.SelectedOptions {
			option := optionByText(options, text)
			if option == nil {
				return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Giá trị lựa chọn %q không thuộc câu hỏi này", text))
			}
			id := option.ID
			rows = append(rows, models.Answer{QuestionID: question.ID, OptionID: &id})
		}
		return rows, nil
	}
	row, err := buildChoiceRow(question, options, a)
	if err != nil {
		return nil, err
	}
	return []models.Answer{*row}, nil
}

func buildRankingRows(question *models.Question, options []models.Option, a dto.AnswerSubmit) ([]models.Answer, error) {
	if len(a.RankingOptionIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "Câu hỏi xếp hạng cần danh sách rankingOptionIds")
	}
	rows := make([]models.Answer, 0, len(a.RankingOptionIDs))
	for i, optionID := range a.RankingOptionIDs {
		id := optionID
		if !optionBelongs(options, id) {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Không tìm thấy optionId: %d", id))
		}
		rank := strconv.Itoa(i + 1)
		rows = append(rows, models.Answer{QuestionID: question.ID, OptionID: &id, AnswerText: &rank})
	}
	return rows, nil
}

// buildChoiceRow resolves a single-option answer: an explicit optionId,
// a text matched case-insensitively against the option texts, or free
// text when the question carries no options at all.
func buildChoiceRow(question *models.Question, options []models.Option, a dto.AnswerSubmit) (*models.Answer, error) {
	if a.OptionID != nil {
		if !optionBelongs(options, *a.OptionID) {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Không tìm thấy optionId: %d", *a.OptionID))
		}
		id := *a.OptionID
		return &models.Answer{QuestionID: question.ID, OptionID: &id}, nil
	}
	if a.AnswerText != nil && len(options) > 0 {
		option := optionByText(options, *a.AnswerText)
		if option == nil {
			return nil, appErrors.Clone(appErrors.ErrBadRequest, fmt.Sprintf("Giá trị lựa chọn %q không thuộc câu hỏi này", *a.AnswerText))
		}
		id := option.ID
		return &models.Answer{QuestionID: question.ID, OptionID: &id}, nil
	}
	return &models.Answer{QuestionID: question.ID, AnswerText: a.AnswerText}, nil
}

func optionBelongs(options []models.Option, id int64) bool {
	for i := range options {
		if options[i].ID == id {
			return true
		}
	}
	return false
}

func optionByText(options []models.Option, text string) *models.Option {
	for i := range options {
		if strings.EqualFold(strings.TrimSpace(options[i].OptionText), strings.TrimSpace(text)) {
			return &options[i]
		}
	}
	return nil
}

func (s *ResponseService) recordActivity(ctx context.Context, userID, responseID int64) {
	if s.activity == nil {
		return
	}
	table := "responses"
	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActionSubmitResponse,
		TargetID:    &responseID,
		TargetTable: &table,
		Description: "Gửi phản hồi khảo sát",
	}); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}

func (s *ResponseService) notifyOwner(ctx context.Context, survey *models.Survey) {
	if s.notify == nil {
		return
	}
	entityType := "survey"
	s.notify.Notify(ctx, &models.Notification{
		UserID:            survey.UserID,
		Type:              models.NotifyNewResponse,
		Title:             "Phản hồi mới",
		Message:           fmt.Sprintf("Khảo sát %q vừa nhận được một phản hồi mới", survey.Title),
		RelatedEntityType: &entityType,
		RelatedEntityID:   &survey.ID,
	})
}
