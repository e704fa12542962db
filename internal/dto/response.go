package dto

import "time"

// AnswerSubmit carries one answered question. Which fields matter
// depends on the question type: rating and boolean questions take a
// single OptionID or AnswerText, multiple-choice questions take
// SelectedOptionIDs or SelectedOptions texts, ranking questions take
// RankingOptionIDs in ranked order, and the remaining types take free
// AnswerText.
type AnswerSubmit struct {
	QuestionID        int64    `json:"questionId" validate:"required"`
	OptionID          *int64   `json:"optionId"`
	AnswerText        *string  `json:"answerText"`
	SelectedOptionIDs []int64  `json:"selectedOptionIds"`
	SelectedOptions   []string `json:"selectedOptions"`
	RankingOptionIDs  []int64  `json:"rankingOptionIds"`
}

// ResponseSubmitRequest submits one full response for a survey. The
// survey comes from the URL.
type ResponseSubmitRequest struct {
	RequestToken    *string        `json:"requestToken"`
	DurationSeconds *int           `json:"durationSeconds"`
	Answers         []AnswerSubmit `json:"answers" validate:"required,min=1,dive"`
}

// ResponseSubmitMessages localizes ResponseSubmitRequest violations.
var ResponseSubmitMessages = map[string]string{
	"Answers.required":            "Danh sách câu trả lời không được để trống",
	"Answers.min":                 "Danh sách câu trả lời không được để trống",
	"Answers.QuestionID.required": "questionId không được để trống",
}

// ResponseSubmitResult reports a stored submission.
type ResponseSubmitResult struct {
	ResponseID  int64     `json:"responseId"`
	SurveyID    int64     `json:"surveyId"`
	AnswerCount int       `json:"answerCount"`
	SubmittedAt time.Time `json:"submittedAt"`
}
