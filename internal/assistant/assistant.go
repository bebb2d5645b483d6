package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// ErrUnavailable is returned when the AI backends are not configured.
var ErrUnavailable = errors.New("assistant backends not configured")

// Generator is the chat completion surface the assistant needs.
// *llm.Proxy satisfies it.
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Answer is one assistant reply with its provenance.
type Answer struct {
	ConversationID int64              `json:"conversation_id"`
	Message        model.ChatMessage  `json:"message"`
	Sources        []model.ChatSource `json:"sources"`
	Confidence     float64            `json:"confidence"`
	CostUSD        float64            `json:"cost_usd"`
	Provider       string             `json:"provider"`
	Intent         Intent             `json:"intent"`
}

type AskInput struct {
	UserID         int64
	ConversationID *int64
	ProjectID      *int64
	Question       string
}

type AssistantService interface {
	Ask(ctx context.Context, input AskInput) (*Answer, error)
	GetConversation(ctx context.Context, id int64) (*model.ChatConversation, []model.ChatMessage, error)
	ListConversations(ctx context.Context, userID int64) ([]model.ChatConversation, error)
}

// historyWindow bounds how many prior turns are replayed into the prompt.
const historyWindow = 10

type assistantService struct {
	chatStore store.ChatStore
	rag       RAGService
	generator Generator
}

func NewAssistantService(chatStore store.ChatStore, rag RAGService, generator Generator) AssistantService {
	return &assistantService{
		chatStore: chatStore,
		rag:       rag,
		generator: generator,
	}
}

func (s *assistantService) Ask(ctx context.Context, input AskInput) (*Answer, error) {
	if s.generator == nil || s.rag == nil {
		return nil, ErrUnavailable
	}
	if input.Question == "" {
		return nil, fmt.Errorf("question is required")
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(input.UserID),
		Component: "scrum.assistant",
	})

	conversation, history, err := s.loadOrCreateConversation(ctx, input)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ConversationID: logger.Ptr(conversation.ID)})

	retrieved, strategy, err := s.rag.Search(ctx, input.Question, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: assistantSystemPrompt + "\n\n" + buildContextBlock(retrieved),
	})
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == model.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input.Question})

	resp, err := s.generator.Generate(ctx, llm.Request{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	sources := make([]model.ChatSource, 0, len(retrieved))
	for _, r := range retrieved {
		sources = append(sources, model.ChatSource{
			IssueID: r.Issue.ID,
			Key:     r.Key,
			Title:   r.Issue.Title,
			Score:   r.Score,
		})
	}

	userMsg := &model.ChatMessage{
		ID:             id.New(),
		ConversationID: conversation.ID,
		Role:           model.ChatRoleUser,
		Content:        input.Question,
	}
	if err := s.chatStore.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("persisting question: %w", err)
	}

	assistantMsg := &model.ChatMessage{
		ID:             id.New(),
		ConversationID: conversation.ID,
		Role:           model.ChatRoleAssistant,
		Content:        resp.Content,
		Sources:        sources,
		CostUSD:        resp.CostUSD,
	}
	if err := s.chatStore.CreateMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("persisting answer: %w", err)
	}
	if err := s.chatStore.TouchConversation(ctx, conversation.ID); err != nil {
		slog.WarnContext(ctx, "failed to touch conversation", "error", err)
	}

	slog.InfoContext(ctx, "assistant answered",
		"intent", strategy.Intent,
		"sources", len(sources),
		"provider", resp.Provider,
		"cost_usd", resp.CostUSD)

	return &Answer{
		ConversationID: conversation.ID,
		Message:        *assistantMsg,
		Sources:        sources,
		Confidence:     confidence(retrieved),
		CostUSD:        resp.CostUSD,
		Provider:       resp.Provider,
		Intent:         strategy.Intent,
	}, nil
}

func (s *assistantService) loadOrCreateConversation(ctx context.Context, input AskInput) (*model.ChatConversation, []model.ChatMessage, error) {
	if input.ConversationID != nil {
		conversation, err := s.chatStore.GetConversation(ctx, *input.ConversationID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading conversation: %w", err)
		}
		if conversation.UserID != input.UserID {
			return nil, nil, fmt.Errorf("conversation %d does not belong to user %d", conversation.ID, input.UserID)
		}
		history, err := s.chatStore.ListMessages(ctx, conversation.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading history: %w", err)
		}
		if len(history) > historyWindow {
			history = history[len(history)-historyWindow:]
		}
		return conversation, history, nil
	}

	conversation := &model.ChatConversation{
		ID:        id.New(),
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Title:     logger.Truncate(input.Question, 120),
	}
	if err := s.chatStore.CreateConversation(ctx, conversation); err != nil {
		return nil, nil, fmt.Errorf("creating conversation: %w", err)
	}
	return conversation, nil, nil
}

func (s *assistantService) GetConversation(ctx context.Context, conversationID int64) (*model.ChatConversation, []model.ChatMessage, error) {
	conversation, err := s.chatStore.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.chatStore.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	return conversation, messages, nil
}

func (s *assistantService) ListConversations(ctx context.Context, userID int64) ([]model.ChatConversation, error) {
	return s.chatStore.ListConversations(ctx, userID)
}

// confidence scales the top retrieval score into [0,1]. No sources means
// the answer rests on the model alone.
func confidence(retrieved []RetrievedIssue) float64 {
	if len(retrieved) == 0 {
		return 0.2
	}
	top := float64(retrieved[0].Score)
	if top > 1 {
		top = 1
	}
	if top < 0 {
		top = 0
	}
	return top
}
