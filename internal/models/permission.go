package models

import "time"

// SurveyPermissionRole is the closed set of permission levels grantable on a
// survey, modelled after the sharing roles of form builders.
type SurveyPermissionRole string

const (
	PermissionOwner   SurveyPermissionRole = "OWNER"
	PermissionEditor  SurveyPermissionRole = "EDITOR"
	PermissionAnalyst SurveyPermissionRole = "ANALYST"
	PermissionViewer  SurveyPermissionRole = "VIEWER"
)

// Description returns the Vietnamese display text for the permission level.
func (p SurveyPermissionRole) Description() string {
	switch p {
	case PermissionOwner:
		return "Chủ sở hữu - Toàn quyền kiểm soát"
	case PermissionEditor:
		return "Biên tập viên - Chỉnh sửa khảo sát"
	case PermissionAnalyst:
		return "Phân tích viên - Chỉ xem kết quả và phân tích"
	case PermissionViewer:
		return "Người xem - Chỉ xem thông tin cơ bản"
	}
	return string(p)
}

// CanEditSurvey reports whether the level allows editing the survey.
func (p SurveyPermissionRole) CanEditSurvey() bool {
	return p == PermissionOwner || p == PermissionEditor
}

// CanViewResults reports whether the level allows viewing responses.
func (p SurveyPermissionRole) CanViewResults() bool {
	return p == PermissionOwner || p == PermissionAnalyst
}

// CanViewSurvey reports whether the level allows viewing basic info.
func (p SurveyPermissionRole) CanViewSurvey() bool {
	return true
}

// CanDeleteSurvey reports whether the level allows deleting the survey.
func (p SurveyPermissionRole) CanDeleteSurvey() bool {
	return p == PermissionOwner
}

// CanManagePermissions reports whether the level allows sharing the survey.
func (p SurveyPermissionRole) CanManagePermissions() bool {
	return p == PermissionOwner
}

// SurveyPermission is a grant of a permission level to a user on a survey.
// RestrictedTeamID, when set, narrows the grant to the lifetime of the
// user's membership in that team.
type SurveyPermission struct {
	ID               int64                `db:"permission_id" json:"permissionId"`
	SurveyID         int64                `db:"survey_id" json:"surveyId"`
	UserID           int64                `db:"user_id" json:"userId"`
	RestrictedTeamID *int64               `db:"restricted_team_id" json:"restrictedTeamId,omitempty"`
	Permission       SurveyPermissionRole `db:"permission" json:"permission"`
	GrantedBy        int64                `db:"granted_by" json:"grantedBy"`
	CreatedAt        time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updatedAt"`
}
