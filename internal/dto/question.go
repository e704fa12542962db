package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// RankingQuestionConfig configures ranking questions.
type RankingQuestionConfig struct {
	RankingOptions []string `json:"rankingOptions" validate:"required,min=1"`
	MaxRankings    int      `json:"maxRankings" validate:"required,min=1"`
}

// FileUploadQuestionConfig configures file-upload questions.
type FileUploadQuestionConfig struct {
	AllowedFileTypes []string `json:"allowedFileTypes" validate:"required,min=1"`
	MaxFileSize      int64    `json:"maxFileSize" validate:"required,min=1"`
	MaxFiles         int      `json:"maxFiles" validate:"required,min=1"`
}

// DateTimeQuestionConfig configures date-time questions. DateFormat
// defaults to "dd/MM/yyyy" when left empty.
type DateTimeQuestionConfig struct {
	DateFormat  string  `json:"dateFormat"`
	IncludeTime bool    `json:"includeTime"`
	MinDate     *string `json:"minDate"`
	MaxDate     *string `json:"maxDate"`
}

// QuestionCreateRequest creates a question. SurveyID may come from the URL
// instead of the body. At most one config block is meaningful, selected by
// questionType; the service rejects a mismatched block.
type QuestionCreateRequest struct {
	SurveyID         *int64                    `json:"surveyId"`
	QuestionText     string                    `json:"questionText" validate:"notblank"`
	QuestionType     models.QuestionType       `json:"questionType" validate:"required,oneof=multiple_choice open_ended rating boolean ranking file_upload date_time"`
	IsRequired       *bool                     `json:"isRequired"`
	RankingConfig    *RankingQuestionConfig    `json:"rankingConfig" validate:"omitempty"`
	FileUploadConfig *FileUploadQuestionConfig `json:"fileUploadConfig" validate:"omitempty"`
	DateTimeConfig   *DateTimeQuestionConfig   `json:"dateTimeConfig" validate:"omitempty"`
}

// QuestionCreateMessages localizes QuestionCreateRequest violations.
var QuestionCreateMessages = map[string]string{
	"QuestionText.notblank":                      "Nội dung câu hỏi không được để trống",
	"QuestionType.required":                      "Loại câu hỏi không được để trống",
	"QuestionType.oneof":                         "Loại câu hỏi không hợp lệ",
	"RankingConfig.RankingOptions.required":      "Ranking options không được để trống",
	"RankingConfig.RankingOptions.min":           "Ranking options không được để trống",
	"RankingConfig.MaxRankings.required":         "Max rankings không được để trống",
	"RankingConfig.MaxRankings.min":              "Max rankings phải lớn hơn 0",
	"FileUploadConfig.AllowedFileTypes.required": "Allowed file types không được để trống",
	"FileUploadConfig.AllowedFileTypes.min":      "Allowed file types không được để trống",
	"FileUploadConfig.MaxFileSize.required":      "Max file size không được để trống",
	"FileUploadConfig.MaxFileSize.min":           "Max file size phải lớn hơn 0",
	"FileUploadConfig.MaxFiles.required":         "Max files không được để trống",
	"FileUploadConfig.MaxFiles.min":              "Max files phải lớn hơn 0",
}

// QuestionUpdateRequest is all-optional, partial-update semantics.
type QuestionUpdateRequest struct {
	QuestionText *string              `json:"questionText" validate:"omitempty,notblank"`
	QuestionType *models.QuestionType `json:"questionType" validate:"omitempty,oneof=multiple_choice open_ended rating boolean ranking file_upload date_time"`
	IsRequired   *bool                `json:"isRequired"`
	DisplayOrder *int                 `json:"displayOrder" validate:"omitempty,min=1"`
}

// QuestionUpdateMessages localizes QuestionUpdateRequest violations.
var QuestionUpdateMessages = map[string]string{
	"QuestionText.notblank": "Nội dung câu hỏi không được để trống",
	"QuestionType.oneof":    "Loại câu hỏi không hợp lệ",
	"DisplayOrder.min":      "Thứ tự hiển thị phải lớn hơn 0",
}

// QuestionResponse is the flat question shape.
type QuestionResponse struct {
	ID                      int64     `json:"id"`
	SurveyID                int64     `json:"surveyId"`
	SurveyTitle             string    `json:"surveyTitle"`
	QuestionText            string    `json:"questionText"`
	QuestionType            string    `json:"questionType"`
	QuestionTypeDescription string    `json:"questionTypeDescription"`
	IsRequired              bool      `json:"isRequired"`
	DisplayOrder            int       `json:"displayOrder"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// QuestionDetailResponse adds the option list and the three config fields.
// All three are present for a uniform shape; only the one matching the
// question's type is non-nil.
type QuestionDetailResponse struct {
	QuestionResponse
	Options          []OptionResponse          `json:"options"`
	RankingConfig    *RankingQuestionConfig    `json:"rankingConfig"`
	FileUploadConfig *FileUploadQuestionConfig `json:"fileUploadConfig"`
	DateTimeConfig   *DateTimeQuestionConfig   `json:"dateTimeConfig"`
}

// NewQuestionResponse maps a question model onto the flat shape.
func NewQuestionResponse(q *models.Question, surveyTitle string) QuestionResponse {
	return QuestionResponse{
		ID:                      q.ID,
		SurveyID:                q.SurveyID,
		SurveyTitle:             surveyTitle,
		QuestionText:            q.QuestionText,
		QuestionType:            string(q.QuestionType),
		QuestionTypeDescription: q.QuestionType.Description(),
		IsRequired:              q.IsRequired,
		DisplayOrder:            q.DisplayOrder,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
	}
}
