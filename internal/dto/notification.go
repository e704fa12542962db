package dto

import (
	"time"

	"github.com/gwynnn297/SmartSurvey-sub001/internal/models"
)

// NotificationResponse returns a notification with its polymorphic related
// entity reference as a (type tag, id) pair.
type NotificationResponse struct {
	NotificationID    int64     `json:"notificationId"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	RelatedEntityType *string   `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64    `json:"relatedEntityId,omitempty"`
	IsRead            bool      `json:"isRead"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewNotificationResponse maps a notification model onto the response shape.
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID:    n.ID,
		Type:              string(n.Type),
		Title:             n.Title,
		Message:           n.Message,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
	}
}

// UnreadCountResponse returns the unread notification count.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}
