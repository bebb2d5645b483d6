package dto

import (
	"time"

	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/model"
)

type AskRequest struct {
	Question       string `json:"question" binding:"required,min=1,max=4000"`
	ConversationID *int64 `json:"conversation_id,string,omitempty"`
	ProjectID      *int64 `json:"project_id,string,omitempty"`
}

type SourceResponse struct {
	IssueID int64   `json:"issue_id,string"`
	Key     string  `json:"key"`
	Title   string  `json:"title"`
	Score   float32 `json:"score"`
}

type AskResponse struct {
	ConversationID int64            `json:"conversation_id,string"`
	Answer         string           `json:"answer"`
	Sources        []SourceResponse `json:"sources"`
	Confidence     float64          `json:"confidence"`
	CostUSD        float64          `json:"cost_usd"`
	Provider       string           `json:"provider"`
	Intent         string           `json:"intent"`
}

func ToAskResponse(answer *assistant.Answer) *AskResponse {
	sources := make([]SourceResponse, 0, len(answer.Sources))
	for _, s := range answer.Sources {
		sources = append(sources, SourceResponse{
			IssueID: s.IssueID,
			Key:     s.Key,
			Title:   s.Title,
			Score:   s.Score,
		})
	}
	return &AskResponse{
		ConversationID: answer.ConversationID,
		Answer:         answer.Message.Content,
		Sources:        sources,
		Confidence:     answer.Confidence,
		CostUSD:        answer.CostUSD,
		Provider:       answer.Provider,
		Intent:         string(answer.Intent),
	}
}

type ConversationResponse struct {
	ID        int64     `json:"id,string"`
	ProjectID *int64    `json:"project_id,string,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToConversationResponses(conversations []model.ChatConversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, ConversationResponse{
			ID:        c.ID,
			ProjectID: c.ProjectID,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return out
}

type MessageResponse struct {
	ID        int64            `json:"id,string"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Sources   []SourceResponse `json:"sources,omitempty"`
	CostUSD   float64          `json:"cost_usd,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func ToMessageResponses(messages []model.ChatMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		sources := make([]SourceResponse, 0, len(m.Sources))
		for _, s := range m.Sources {
			sources = append(sources, SourceResponse{
				IssueID: s.IssueID,
				Key:     s.Key,
				Title:   s.Title,
				Score:   s.Score,
			})
		}
		out = append(out, MessageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Sources:   sources,
			CostUSD:   m.CostUSD,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

type SummaryResponse struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id,string"`
	Length     string `json:"length"`
	Content    string `json:"content"`
	Cached     bool   `json:"cached"`
}

func ToSummaryResponse(s *model.Summary) *SummaryResponse {
	return &SummaryResponse{
		EntityType: s.EntityType,
		EntityID:   s.EntityID,
		Length:     string(s.Length),
		Content:    s.Content,
		Cached:     s.Cached,
	}
}
