package service

import (
	"context"
	"log/slog"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// Notifier records in-app notifications for domain events. Emission is
// best effort: a failed notification must never fail the write that
// triggered it.
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, t model.NotificationType, title, message string, data map[string]any)
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationService struct {
	notificationStore store.NotificationStore
}

func NewNotificationService(notificationStore store.NotificationStore) NotificationService {
	return &notificationService{notificationStore: notificationStore}
}

func (s *notificationService) Notify(ctx context.Context, recipientID int64, t model.NotificationType, title, message string, data map[string]any) {
	n := &model.Notification{
		ID:          id.New(),
		RecipientID: recipientID,
		Type:        t,
		Title:       title,
		Message:     message,
		Data:        data,
	}
	if err := s.notificationStore.Create(ctx, n); err != nil {
		slog.WarnContext(ctx, "notification write failed",
			"recipient_id", recipientID,
			"type", string(t),
			"error", err)
	}
}

func (s *notificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	return s.notificationStore.ListByRecipient(ctx, userID, unreadOnly, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationStore.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) (*model.Notification, error) {
	return s.notificationStore.MarkRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationStore.MarkAllRead(ctx, userID)
}
