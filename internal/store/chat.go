package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type chatStore struct {
	queries *sqlc.Queries
}

func newChatStore(queries *sqlc.Queries) ChatStore {
	return &chatStore{queries: queries}
}

func (s *chatStore) CreateConversation(ctx context.Context, c *model.ChatConversation) error {
	row, err := s.queries.CreateConversation(ctx, sqlc.CreateConversationParams{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		UserID:    c.UserID,
		Title:     c.Title,
	})
	if err != nil {
		return err
	}
	*c = *toConversationModel(row)
	return nil
}

func (s *chatStore) GetConversation(ctx context.Context, id int64) (*model.ChatConversation, error) {
	row, err := s.queries.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toConversationModel(row), nil
}

func (s *chatStore) ListConversations(ctx context.Context, userID int64) ([]model.ChatConversation, error) {
	rows, err := s.queries.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	conversations := make([]model.ChatConversation, 0, len(rows))
	for _, row := range rows {
		conversations = append(conversations, *toConversationModel(row))
	}
	return conversations, nil
}

func (s *chatStore) TouchConversation(ctx context.Context, id int64) error {
	return s.queries.TouchConversation(ctx, id)
}

func (s *chatStore) CreateMessage(ctx context.Context, m *model.ChatMessage) error {
	sources := m.Sources
	if sources == nil {
		sources = []model.ChatSource{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return err
	}

	row, err := s.queries.CreateChatMessage(ctx, sqlc.CreateChatMessageParams{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		Sources:        sourcesJSON,
		CostUsd:        m.CostUSD,
	})
	if err != nil {
		return err
	}
	msg, err := toMessageModel(row)
	if err != nil {
		return err
	}
	*m = *msg
	return nil
}

func (s *chatStore) ListMessages(ctx context.Context, conversationID int64) ([]model.ChatMessage, error) {
	rows, err := s.queries.ListChatMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	messages := make([]model.ChatMessage, 0, len(rows))
	for _, row := range rows {
		msg, err := toMessageModel(row)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

func toConversationModel(row sqlc.ChatConversation) *model.ChatConversation {
	return &model.ChatConversation{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		UserID:    row.UserID,
		Title:     row.Title,
		CreatedAt: fromTimestamptz(row.CreatedAt),
		UpdatedAt: fromTimestamptz(row.UpdatedAt),
	}
}

func toMessageModel(row sqlc.ChatMessage) (*model.ChatMessage, error) {
	var sources []model.ChatSource
	if len(row.Sources) > 0 {
		if err := json.Unmarshal(row.Sources, &sources); err != nil {
			return nil, err
		}
	}
	return &model.ChatMessage{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		Role:           model.ChatRole(row.Role),
		Content:        row.Content,
		Sources:        sources,
		CostUSD:        row.CostUsd,
		CreatedAt:      fromTimestamptz(row.CreatedAt),
	}, nil
}
