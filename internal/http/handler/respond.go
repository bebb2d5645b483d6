package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

// userIDHeader carries the acting user's identity. Authentication sits
// in front of this service; the header is what the gateway forwards.
const userIDHeader = "X-User-ID"

// respondError maps domain errors onto HTTP statuses at the boundary.
func respondError(c *gin.Context, ctx context.Context, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient project role"})
	case errors.Is(err, assistant.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI backends are not configured"})
	case isUniqueViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "resource already exists"})
	default:
		slog.ErrorContext(ctx, msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func badRequest(c *gin.Context, ctx context.Context, err error) {
	slog.WarnContext(ctx, "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// pathID parses a snowflake path parameter. A false return means the
// response has already been written.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// actingUser reads the identity header. Mutating routes require it.
func actingUser(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(userIDHeader)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": userIDHeader + " header is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid " + userIDHeader + " header"})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	return &id, nil
}
