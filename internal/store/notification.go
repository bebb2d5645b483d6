package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	row, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:               n.ID,
		RecipientID:      n.RecipientID,
		NotificationType: string(n.Type),
		Title:            n.Title,
		Message:          n.Message,
		Data:             dataJSON,
	})
	if err != nil {
		return err
	}
	created, err := toNotificationModel(row)
	if err != nil {
		return err
	}
	*n = *created
	return nil
}

func (s *notificationStore) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	rows, err := s.queries.ListNotifications(ctx, sqlc.ListNotificationsParams{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		LimitCount:  limit,
	})
	if err != nil {
		return nil, err
	}
	notifications := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := toNotificationModel(row)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, nil
}

func (s *notificationStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return s.queries.CountUnreadNotifications(ctx, recipientID)
}

func (s *notificationStore) MarkRead(ctx context.Context, id, recipientID int64) (*model.Notification, error) {
	row, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{
		ID:          id,
		RecipientID: recipientID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toNotificationModel(row)
}

func (s *notificationStore) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.queries.MarkAllNotificationsRead(ctx, recipientID)
}

func toNotificationModel(row sqlc.Notification) (*model.Notification, error) {
	var data map[string]any
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return nil, err
		}
	}
	return &model.Notification{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Type:        model.NotificationType(row.NotificationType),
		Title:       row.Title,
		Message:     row.Message,
		Data:        data,
		IsRead:      row.IsRead,
		ReadAt:      fromNullableTimestamptz(row.ReadAt),
		CreatedAt:   fromTimestamptz(row.CreatedAt),
	}, nil
}
