package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/http/dto"
	"ficct.app/scrum/internal/model"
)

type AssistantHandler struct {
	assistantService assistant.AssistantService
	summarizer       assistant.Summarizer
	proxy            *llm.Proxy
}

// NewAssistantHandler wires the AI surface. Any dependency may be nil
// when its backend is not configured; the affected routes then answer
// 503 instead of panicking.
func NewAssistantHandler(assistantService assistant.AssistantService, summarizer assistant.Summarizer, proxy *llm.Proxy) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		summarizer:       summarizer,
		proxy:            proxy,
	}
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, ctx, err)
		return
	}

	if h.assistantService == nil {
		respondError(c, ctx, assistant.ErrUnavailable, "assistant unavailable")
		return
	}

	answer, err := h.assistantService.Ask(ctx, assistant.AskInput{
		UserID:         userID,
		ConversationID: req.ConversationID,
		ProjectID:      req.ProjectID,
		Question:       req.Question,
	})
	if err != nil {
		respondError(c, ctx, err, "failed to answer question")
		return
	}

	c.JSON(http.StatusOK, dto.ToAskResponse(answer))
}

func (h *AssistantHandler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if h.assistantService == nil {
		respondError(c, ctx, assistant.ErrUnavailable, "assistant unavailable")
		return
	}

	conversations, err := h.assistantService.ListConversations(ctx, userID)
	if err != nil {
		respondError(c, ctx, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": dto.ToConversationResponses(conversations)})
}

func (h *AssistantHandler) GetConversation(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if h.assistantService == nil {
		respondError(c, ctx, assistant.ErrUnavailable, "assistant unavailable")
		return
	}

	conversation, messages, err := h.assistantService.GetConversation(ctx, id)
	if err != nil {
		respondError(c, ctx, err, "failed to load conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation": dto.ConversationResponse{
			ID:        conversation.ID,
			ProjectID: conversation.ProjectID,
			Title:     conversation.Title,
			CreatedAt: conversation.CreatedAt,
			UpdatedAt: conversation.UpdatedAt,
		},
		"messages": dto.ToMessageResponses(messages),
	})
}

// summaryLength parses the ?length= query, defaulting to standard.
func summaryLength(c *gin.Context) (model.SummaryLength, bool) {
	raw := c.DefaultQuery("length", string(model.SummaryLengthStandard))
	length := model.SummaryLength(raw)
	switch length {
	case model.SummaryLengthShort, model.SummaryLengthStandard, model.SummaryLengthDetailed:
		return length, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "length must be short, standard or detailed"})
		return "", false
	}
}

func (h *AssistantHandler) SummarizeIssue(c *gin.Context) {
	h.summarize(c, assistant.EntityTypeIssue)
}

func (h *AssistantHandler) SummarizeSprint(c *gin.Context) {
	h.summarize(c, assistant.EntityTypeSprint)
}

func (h *AssistantHandler) SummarizeProject(c *gin.Context) {
	h.summarize(c, assistant.EntityTypeProject)
}

func (h *AssistantHandler) summarize(c *gin.Context, entityType string) {
	ctx := c.Request.Context()

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	length, ok := summaryLength(c)
	if !ok {
		return
	}

	if h.summarizer == nil {
		respondError(c, ctx, assistant.ErrUnavailable, "summarizer unavailable")
		return
	}

	var (
		summary *model.Summary
		err     error
	)
	switch entityType {
	case assistant.EntityTypeIssue:
		summary, err = h.summarizer.SummarizeIssue(ctx, id, length)
	case assistant.EntityTypeSprint:
		summary, err = h.summarizer.SummarizeSprint(ctx, id, length)
	default:
		summary, err = h.summarizer.SummarizeProject(ctx, id, length)
	}
	if err != nil {
		respondError(c, ctx, err, "failed to summarize "+entityType)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *AssistantHandler) Stats(c *gin.Context) {
	if h.proxy == nil {
		c.JSON(http.StatusOK, gin.H{"providers": map[string]llm.ProviderUsage{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": h.proxy.Stats()})
}
