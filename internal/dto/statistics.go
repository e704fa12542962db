package dto

// SurveyOverview summarizes a survey's structure and response volume.
type SurveyOverview struct {
	SurveyID       int64           `json:"surveyId"`
	Title          string          `json:"title"`
	Status         string          `json:"status"`
	TotalQuestions int64           `json:"totalQuestions"`
	TotalResponses int64           `json:"totalResponses"`
	Questions      []QuestionCount `json:"questions"`
}

// QuestionCount pairs one question with its answer count.
type QuestionCount struct {
	QuestionID   int64  `json:"questionId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	AnswerCount  int64  `json:"answerCount"`
}
