package model

import "time"

type NotificationType string

const (
	NotificationIssueAssigned   NotificationType = "issue_assigned"
	NotificationIssueCommented  NotificationType = "issue_commented"
	NotificationStatusChanged   NotificationType = "status_changed"
	NotificationSprintStarted   NotificationType = "sprint_started"
	NotificationSprintCompleted NotificationType = "sprint_completed"
	NotificationAnomalyDetected NotificationType = "anomaly_detected"
)

// Notification is an in-app alert for a single user. Data carries the
// related entity ids so clients can link to the source.
type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        map[string]any   `json:"data"`
	IsRead      bool             `json:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
