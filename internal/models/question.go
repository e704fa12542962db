package models

import "time"

// QuestionType is the closed set of question kinds.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeOpenEnded      QuestionType = "open_ended"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeBoolean        QuestionType = "boolean"
	QuestionTypeRanking        QuestionType = "ranking"
	QuestionTypeFileUpload     QuestionType = "file_upload"
	QuestionTypeDateTime       QuestionType = "date_time"
)

// Description returns the Vietnamese display text for the question type.
func (t QuestionType) Description() string {
	switch t {
	case QuestionTypeMultipleChoice:
		return "Trắc nghiệm nhiều lựa chọn"
	case QuestionTypeOpenEnded:
		return "Câu hỏi mở"
	case QuestionTypeRating:
		return "Đánh giá"
	case QuestionTypeBoolean:
		return "Đúng/Sai"
	case QuestionTypeRanking:
		return "Xếp hạng"
	case QuestionTypeFileUpload:
		return "Tải tệp lên"
	case QuestionTypeDateTime:
		return "Ngày giờ"
	}
	return string(t)
}

// HasConfig reports whether the type carries a type-specific configuration
// block (ranking, file_upload, date_time).
func (t QuestionType) HasConfig() bool {
	switch t {
	case QuestionTypeRanking, QuestionTypeFileUpload, QuestionTypeDateTime:
		return true
	}
	return false
}

// Question represents a survey question. ConfigJSON holds the serialized
// type-specific configuration for the types that carry one.
type Question struct {
	ID           int64        `db:"question_id" json:"questionId"`
	SurveyID     int64        `db:"survey_id" json:"surveyId"`
	QuestionText string       `db:"question_text" json:"questionText"`
	QuestionType QuestionType `db:"question_type" json:"questionType"`
	IsRequired   bool         `db:"is_required" json:"isRequired"`
	DisplayOrder int          `db:"display_order" json:"displayOrder"`
	ConfigJSON   *string      `db:"question_config" json:"-"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// Option represents an answer option attached to a question.
type Option struct {
	ID         int64     `db:"option_id" json:"optionId"`
	QuestionID int64     `db:"question_id" json:"questionId"`
	OptionText string    `db:"option_text" json:"optionText"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
