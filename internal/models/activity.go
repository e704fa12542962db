package models

import "time"

// ActionType is the closed set of recorded activity actions.
type ActionType string

const (
	ActionLogin          ActionType = "login"
	ActionLogout         ActionType = "logout"
	ActionCreateSurvey   ActionType = "create_survey"
	ActionEditSurvey     ActionType = "edit_survey"
	ActionDeleteSurvey   ActionType = "delete_survey"
	ActionAddQuestion    ActionType = "add_question"
	ActionEditQuestion   ActionType = "edit_question"
	ActionDeleteQuestion ActionType = "delete_question"
	ActionSubmitResponse ActionType = "submit_response"
)

// ActivityLog records one user action against a target entity.
type ActivityLog struct {
	ID          int64      `db:"log_id" json:"logId"`
	UserID      int64      `db:"user_id" json:"userId"`
	ActionType  ActionType `db:"action_type" json:"actionType"`
	TargetID    *int64     `db:"target_id" json:"targetId,omitempty"`
	TargetTable *string    `db:"target_table" json:"targetTable,omitempty"`
	Description string     `db:"description" json:"description"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}
