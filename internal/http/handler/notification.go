package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	var limit int32
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = int32(parsed)
	}

	notifications, err := h.notifications.List(ctx, userID, unreadOnly, limit)
	if err != nil {
		respondError(c, ctx, err, "failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": dto.ToNotificationResponses(notifications)})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(ctx, userID)
	if err != nil {
		respondError(c, ctx, err, "failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}
	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	n, err := h.notifications.MarkRead(ctx, userID, notificationID)
	if err != nil {
		respondError(c, ctx, err, "failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationResponse(n))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkAllRead(ctx, userID); err != nil {
		respondError(c, ctx, err, "failed to mark notifications read")
		return
	}

	c.Status(http.StatusNoContent)
}
