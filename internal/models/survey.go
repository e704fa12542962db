package models

import "time"

// SurveyStatus is the closed set of survey lifecycle states.
type SurveyStatus string

const (
	SurveyStatusDraft     SurveyStatus = "draft"
	SurveyStatusPublished SurveyStatus = "published"
	SurveyStatusArchived  SurveyStatus = "archived"
)

// Description returns the Vietnamese display text for the status.
func (s SurveyStatus) Description() string {
	switch s {
	case SurveyStatusDraft:
		return "Bản nháp"
	case SurveyStatusPublished:
		return "Đã xuất bản"
	case SurveyStatusArchived:
		return "Đã lưu trữ"
	}
	return string(s)
}

// Survey represents a survey stored in the surveys table.
type Survey struct {
	ID           int64        `db:"survey_id" json:"surveyId"`
	UserID       int64        `db:"user_id" json:"userId"`
	Title        string       `db:"title" json:"title"`
	Description  *string      `db:"description" json:"description,omitempty"`
	CategoryID   *int64       `db:"category_id" json:"categoryId,omitempty"`
	CategoryName *string      `db:"category_name" json:"categoryName,omitempty"`
	AiPrompt     *string      `db:"ai_prompt" json:"aiPrompt,omitempty"`
	Status       SurveyStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// SurveyFilter captures listing criteria for surveys accessible to a user.
type SurveyFilter struct {
	Status   *SurveyStatus
	Search   string
	Page     int
	PageSize int
}

// Category represents a survey category.
type Category struct {
	ID           int64     `db:"category_id" json:"categoryId"`
	UserID       int64     `db:"user_id" json:"userId"`
	CategoryName string    `db:"category_name" json:"categoryName"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
