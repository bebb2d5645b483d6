package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment so that business context (project_id,
// issue_id, etc.) is included in every log statement without manual plumbing.
type LogFields struct {
	ProjectID      *int64  // Project ID
	IssueID        *int64  // Issue ID
	SprintID       *int64  // Sprint ID
	UserID         *int64  // Acting user ID
	ConversationID *int64  // Assistant conversation ID
	MessageID      *string // Redis stream message ID
	TaskType       *string // Queue task type (e.g., "index_issue")
	Component      string  // Component name (e.g., "scrum.assistant.rag")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// mergeFields merges two LogFields, preferring non-nil/non-empty values from 'new'.
func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.ProjectID != nil {
		result.ProjectID = new.ProjectID
	}
	if new.IssueID != nil {
		result.IssueID = new.IssueID
	}
	if new.SprintID != nil {
		result.SprintID = new.SprintID
	}
	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.ConversationID != nil {
		result.ConversationID = new.ConversationID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.TaskType != nil {
		result.TaskType = new.TaskType
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{IssueID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen runes, appending "..." if truncated.
// Useful for logging potentially long strings like queries or prompts.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
