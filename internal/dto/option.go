package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// OptionCreateRequest creates an option. QuestionID may be supplied via the
// URL instead of the body; the handler fills it in before validation.
type OptionCreateRequest struct {
	QuestionID int64  `json:"questionId" validate:"required"`
	OptionText string `json:"optionText" validate:"notblank"`
}

// OptionCreateMessages localizes OptionCreateRequest violations.
var OptionCreateMessages = map[string]string{
	"QuestionID.required": "Question ID không được để trống",
	"OptionText.notblank": "Nội dung tùy chọn không được để trống",
}

// OptionUpdateRequest renames an option.
type OptionUpdateRequest struct {
	OptionText string `json:"optionText" validate:"notblank"`
}

// OptionUpdateMessages localizes OptionUpdateRequest violations.
var OptionUpdateMessages = map[string]string{
	"OptionText.notblank": "Nội dung tùy chọn không được để trống",
}

// OptionResponse carries the option plus the denormalized question text for
// display.
type OptionResponse struct {
	ID           int64     `json:"id"`
	QuestionID   int64     `json:"questionId"`
	QuestionText string    `json:"questionText"`
	OptionText   string    `json:"optionText"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewOptionResponse maps an option model onto the response shape.
func NewOptionResponse(o *models.Option, questionText string) OptionResponse {
	return OptionResponse{
		ID:           o.ID,
		QuestionID:   o.QuestionID,
		QuestionText: questionText,
		OptionText:   o.OptionText,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
