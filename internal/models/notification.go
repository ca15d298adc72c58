package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types accepted by the API.
var NotificationTypes = []string{
	"info", "warning", "success", "error",
	"system_update", "maintenance", "feature_announcement", "security_alert",
}

// ValidNotificationType reports whether t is one of the accepted types.
func ValidNotificationType(t string) bool {
	for _, v := range NotificationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Notification is a broadcast message shown to platform users.
type Notification struct {
	ID         uuid.UUID      `json:"id"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Type       string         `json:"type"`
	Target     string         `json:"target"`
	TargetSpec map[string]any `json:"target_spec"`
	Priority   int            `json:"priority"`
	IsActive   bool           `json:"is_active"`
	CreatedBy  *uuid.UUID     `json:"created_by"`
	ExpiresAt  *time.Time     `json:"expires_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NotificationStats aggregates counts for the admin dashboard.
type NotificationStats struct {
	Total  int64 `json:"total_notifications"`
	Active int64 `json:"active_notifications"`
	Recent int64 `json:"recent_notifications"`
}
