package dto

import "github.com/gwynnn297/SmartSurvey-sub001/internal/models"

// SurveyCreateRequest creates a survey. Only title is required.
type SurveyCreateRequest struct {
	Title       string  `json:"title" validate:"notblank,max=255"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"categoryId"`
	AiPrompt    *string `json:"aiPrompt"`
}

// SurveyCreateMessages localizes SurveyCreateRequest violations.
var SurveyCreateMessages = map[string]string{
	"Title.notblank": "Tiêu đề khảo sát không được để trống",
	"Title.max":      "Tiêu đề khảo sát không được vượt quá 255 ký tự",
}

// SurveyUpdateRequest carries partial-update semantics: every field is
// optional and an absent field leaves the stored value unchanged. An
// all-absent payload is well-formed.
type SurveyUpdateRequest struct {
	Title       *string              `json:"title" validate:"omitempty,notblank,max=255"`
	Description *string              `json:"description"`
	CategoryID  *int64               `json:"categoryId"`
	AiPrompt    *string              `json:"aiPrompt"`
	Status      *models.SurveyStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// SurveyUpdateMessages localizes SurveyUpdateRequest violations.
var SurveyUpdateMessages = map[string]string{
	"Title.notblank": "Tiêu đề khảo sát không được để trống",
	"Title.max":      "Tiêu đề khảo sát không được vượt quá 255 ký tự",
	"Status.oneof":   "Trạng thái khảo sát không hợp lệ",
}
