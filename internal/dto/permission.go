package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// SurveyPermissionUpdateRequest replaces the complete grant list of a
// survey. Each element is validated independently; one invalid element
// fails the whole request. An empty or absent list revokes every grant.
type SurveyPermissionUpdateRequest struct {
	TeamAccess []TeamAccess `json:"teamAccess" validate:"omitempty,dive"`
}

// TeamAccess names a grantee by userId or email (resolution of email is the
// service's job) and optionally narrows the grant to members of a team.
// Permission is mandatory even when the grantee fields are not.
type TeamAccess struct {
	UserID           *int64                      `json:"userId"`
	Email            *string                     `json:"email" validate:"omitempty,email"`
	RestrictedTeamID *int64                      `json:"restrictedTeamId"`
	Permission       models.SurveyPermissionRole `json:"permission" validate:"required,oneof=OWNER EDITOR ANALYST VIEWER"`
}

// PermissionUpdateMessages localizes SurveyPermissionUpdateRequest violations.
var PermissionUpdateMessages = map[string]string{
	"TeamAccess.Permission.required": "permission không được để trống",
	"TeamAccess.Permission.oneof":    "permission không hợp lệ",
	"TeamAccess.Email.email":         "Email không hợp lệ",
}

// SurveyPermissionResponse returns the grant list after an update together
// with warnings for skipped entries.
type SurveyPermissionResponse struct {
	SurveyID int64        `json:"surveyId"`
	Users    []SharedUser `json:"users"`
	Warnings []string     `json:"warnings"`
}

// SharedUser describes one active grant.
type SharedUser struct {
	UserID             int64                       `json:"userId"`
	Email              string                      `json:"email"`
	FullName           string                      `json:"fullName"`
	Permission         models.SurveyPermissionRole `json:"permission"`
	GrantedBy          int64                       `json:"grantedBy"`
	GrantedByName      string                      `json:"grantedByName"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
	RestrictedTeamID   *int64                      `json:"restrictedTeamId,omitempty"`
	RestrictedTeamName *string                     `json:"restrictedTeamName,omitempty"`
}
