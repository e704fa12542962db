package models

import "time"

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifyTeamMemberAdded        NotificationType = "TEAM_MEMBER_ADDED"
	NotifyTeamMemberRoleChanged  NotificationType = "TEAM_MEMBER_ROLE_CHANGED"
	NotifyTeamMemberRemoved      NotificationType = "TEAM_MEMBER_REMOVED"
	NotifyTeamMemberLeft         NotificationType = "TEAM_MEMBER_LEFT"
	NotifyTeamCreated            NotificationType = "TEAM_CREATED"
	NotifyTeamInvitation         NotificationType = "TEAM_INVITATION"
	NotifyTeamInvitationRejected NotificationType = "TEAM_INVITATION_REJECTED"
	NotifyTeamDeleted            NotificationType = "TEAM_DELETED"
	NotifySurveyShared           NotificationType = "SURVEY_SHARED"
	NotifySurveyPermissionChange NotificationType = "SURVEY_PERMISSION_CHANGED"
	NotifyNewResponse            NotificationType = "NEW_RESPONSE"
	NotifySurveyPublished        NotificationType = "SURVEY_PUBLISHED"
)

// Entity-type tags for polymorphic related-entity references.
const (
	EntitySurvey   = "survey"
	EntityTeam     = "team"
	EntityResponse = "response"
)

// Notification is a per-user message referencing a related entity by a
// (type tag, id) pair.
type Notification struct {
	ID                int64            `db:"notification_id" json:"notificationId"`
	UserID            int64            `db:"user_id" json:"userId"`
	Type              NotificationType `db:"type" json:"type"`
	Title             string           `db:"title" json:"title"`
	Message           string           `db:"message" json:"message"`
	RelatedEntityType *string          `db:"related_entity_type" json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64           `db:"related_entity_id" json:"relatedEntityId,omitempty"`
	IsRead            bool             `db:"is_read" json:"isRead"`
	CreatedAt         time.Time        `db:"created_at" json:"createdAt"`
}
