package models

import "time"

// Response is one submission against a survey. UserID is nil for
// anonymous respondents; published surveys accept submissions without
// authentication.
type Response struct {
	ID              int64     `db:"response_id" json:"responseId"`
	SurveyID        int64     `db:"survey_id" json:"surveyId"`
	UserID          *int64    `db:"user_id" json:"userId,omitempty"`
	RequestToken    *string   `db:"request_token" json:"requestToken,omitempty"`
	DurationSeconds *int      `db:"duration_seconds" json:"durationSeconds,omitempty"`
	SubmittedAt     time.Time `db:"submitted_at" json:"submittedAt"`
}

// Answer stores one answered value inside a response. Choice answers
// reference an option row; ranking answers additionally keep the
// 1-based rank in AnswerText.
type Answer struct {
	ID         int64   `db:"answer_id" json:"answerId"`
	ResponseID int64   `db:"response_id" json:"responseId"`
	QuestionID int64   `db:"question_id" json:"questionId"`
	OptionID   *int64  `db:"option_id" json:"optionId,omitempty"`
	AnswerText *string `db:"answer_text" json:"answerText,omitempty"`
}
