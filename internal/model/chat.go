package model

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatConversation struct {
	ID        int64     `json:"id"`
	ProjectID *int64    `json:"project_id,omitempty"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatSource identifies an issue cited in an assistant answer.
type ChatSource struct {
	IssueID int64   `json:"issue_id"`
	Key     string  `json:"key"`
	Title   string  `json:"title"`
	Score   float32 `json:"score"`
}

type ChatMessage struct {
	ID             int64        `json:"id"`
	ConversationID int64        `json:"conversation_id"`
	Role           ChatRole     `json:"role"`
	Content        string       `json:"content"`
	Sources        []ChatSource `json:"sources"`
	CostUSD        float64      `json:"cost_usd"`
	CreatedAt      time.Time    `json:"created_at"`
}
