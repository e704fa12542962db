package dto

import "time"

// DashboardSummary aggregates the per-user dashboard. Detail lists are
// always empty slices, never null, when there is no data.
type DashboardSummary struct {
	OwnedSurveys        int64          `json:"ownedSurveys"`
	SharedSurveys       int64          `json:"sharedSurveys"`
	TotalSurveys        int64          `json:"totalSurveys"`
	ActiveSurveys       int64          `json:"activeSurveys"`
	TotalResponses      int64          `json:"totalResponses"`
	TotalTeams          int64          `json:"totalTeams"`
	SharedSurveysDetail []SharedSurvey `json:"sharedSurveysDetail"`
	RecentActivity      []Activity     `json:"recentActivity"`
}

// SharedSurvey describes one survey shared with the user. SharedVia is
// "user" for a direct grant and "team" for a team-scoped one.
type SharedSurvey struct {
	SurveyID   int64  `json:"surveyId"`
	Title      string `json:"title"`
	Permission string `json:"permission"`
	SharedVia  string `json:"sharedVia"`
}

// Activity is one recent-activity entry, referencing its target entity by a
// (table tag, id) pair.
type Activity struct {
	ActionType  string    `json:"actionType"`
	Description string    `json:"description"`
	TargetID    *int64    `json:"targetId,omitempty"`
	TargetTable *string   `json:"targetTable,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
