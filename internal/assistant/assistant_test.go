package assistant_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/internal/assistant"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

type fakeChatStore struct {
	store.ChatStore
	conversations map[int64]*model.ChatConversation
	messages      map[int64][]model.ChatMessage
	created       []*model.ChatMessage
	touched       []int64
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		conversations: map[int64]*model.ChatConversation{},
		messages:      map[int64][]model.ChatMessage{},
	}
}

func (f *fakeChatStore) CreateConversation(_ context.Context, c *model.ChatConversation) error {
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeChatStore) GetConversation(_ context.Context, id int64) (*model.ChatConversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeChatStore) ListMessages(_ context.Context, conversationID int64) ([]model.ChatMessage, error) {
	return f.messages[conversationID], nil
}

func (f *fakeChatStore) CreateMessage(_ context.Context, m *model.ChatMessage) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeChatStore) TouchConversation(_ context.Context, id int64) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeRAG struct {
	assistant.RAGService
	searchFn func(ctx context.Context, question string, projectID *int64) ([]assistant.RetrievedIssue, assistant.SearchStrategy, error)
}

func (f *fakeRAG) Search(ctx context.Context, question string, projectID *int64) ([]assistant.RetrievedIssue, assistant.SearchStrategy, error) {
	return f.searchFn(ctx, question, projectID)
}

type fakeGenerator struct {
	generateFn func(ctx context.Context, req llm.Request) (*llm.Response, error)
	requests   []llm.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	return f.generateFn(ctx, req)
}

var _ = Describe("AssistantService", func() {
	var (
		ctx       context.Context
		chatStore *fakeChatStore
		rag       *fakeRAG
		generator *fakeGenerator
		svc       assistant.AssistantService
	)

	const userID = int64(7)

	BeforeEach(func() {
		ctx = context.Background()
		chatStore = newFakeChatStore()
		rag = &fakeRAG{
			searchFn: func(_ context.Context, _ string, _ *int64) ([]assistant.RetrievedIssue, assistant.SearchStrategy, error) {
				return []assistant.RetrievedIssue{
					{Issue: model.Issue{ID: 11, Title: "Checkout timeout"}, Key: "PAY-3", Score: 0.87},
				}, assistant.SearchStrategy{Intent: assistant.IntentGeneral}, nil
			},
		}
		generator = &fakeGenerator{
			generateFn: func(_ context.Context, _ llm.Request) (*llm.Response, error) {
				return &llm.Response{Content: "PAY-3 is timing out.", Provider: "bedrock", CostUSD: 0.002}, nil
			},
		}
		svc = assistant.NewAssistantService(chatStore, rag, generator)
	})

	Describe("Ask", func() {
		It("answers with sources and provenance", func() {
			answer, err := svc.Ask(ctx, assistant.AskInput{UserID: userID, Question: "why is checkout slow?"})
			Expect(err).NotTo(HaveOccurred())

			Expect(answer.Message.Content).To(Equal("PAY-3 is timing out."))
			Expect(answer.Provider).To(Equal("bedrock"))
			Expect(answer.CostUSD).To(Equal(0.002))
			Expect(answer.Intent).To(Equal(assistant.IntentGeneral))
			Expect(answer.Sources).To(HaveLen(1))
			Expect(answer.Sources[0].Key).To(Equal("PAY-3"))
			Expect(answer.Confidence).To(BeNumerically("~", 0.87, 1e-6))
		})

		It("creates a conversation titled from the question", func() {
			answer, err := svc.Ask(ctx, assistant.AskInput{UserID: userID, Question: "why is checkout slow?"})
			Expect(err).NotTo(HaveOccurred())

			conversation := chatStore.conversations[answer.ConversationID]
			Expect(conversation).NotTo(BeNil())
			Expect(conversation.UserID).To(Equal(userID))
			Expect(conversation.Title).To(Equal("why is checkout slow?"))
		})

		It("persists the question and the answer", func() {
			_, err := svc.Ask(ctx, assistant.AskInput{UserID: userID, Question: "why is checkout slow?"})
			Expect(err).NotTo(HaveOccurred())

			Expect(chatStore.created).To(HaveLen(2))
			Expect(chatStore.created[0].Role).To(Equal(model.ChatRoleUser))
			Expect(chatStore.created[1].Role).To(Equal(model.ChatRoleAssistant))
			Expect(chatStore.created[1].CostUSD).To(Equal(0.002))
			Expect(chatStore.touched).To(HaveLen(1))
		})

		It("replays only the last ten turns of history", func() {
			conversationID := int64(500)
			chatStore.conversations[conversationID] = &model.ChatConversation{ID: conversationID, UserID: userID}
			for i := 0; i < 14; i++ {
				chatStore.messages[conversationID] = append(chatStore.messages[conversationID], model.ChatMessage{
					ConversationID: conversationID,
					Role:           model.ChatRoleUser,
					Content:        fmt.Sprintf("turn %d", i),
				})
			}

			_, err := svc.Ask(ctx, assistant.AskInput{
				UserID:         userID,
				ConversationID: &conversationID,
				Question:       "and now?",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(generator.requests).To(HaveLen(1))
			messages := generator.requests[0].Messages
			// system prompt + 10 history turns + the new question
			Expect(messages).To(HaveLen(12))
			Expect(messages[1].Content).To(Equal("turn 4"))
			Expect(messages[11].Content).To(Equal("and now?"))
		})

		It("rejects a conversation owned by another user", func() {
			conversationID := int64(501)
			chatStore.conversations[conversationID] = &model.ChatConversation{ID: conversationID, UserID: userID + 1}

			_, err := svc.Ask(ctx, assistant.AskInput{
				UserID:         userID,
				ConversationID: &conversationID,
				Question:       "anything?",
			})
			Expect(err).To(MatchError(ContainSubstring("does not belong to user")))
		})

		It("requires a question", func() {
			_, err := svc.Ask(ctx, assistant.AskInput{UserID: userID})
			Expect(err).To(MatchError(ContainSubstring("question is required")))
		})

		It("reports low confidence when retrieval finds nothing", func() {
			rag.searchFn = func(_ context.Context, _ string, _ *int64) ([]assistant.RetrievedIssue, assistant.SearchStrategy, error) {
				return nil, assistant.SearchStrategy{Intent: assistant.IntentGeneral}, nil
			}
			answer, err := svc.Ask(ctx, assistant.AskInput{UserID: userID, Question: "anything?"})
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Confidence).To(Equal(0.2))
			Expect(answer.Sources).To(BeEmpty())
		})

		It("is unavailable without a generator", func() {
			svc = assistant.NewAssistantService(chatStore, rag, nil)
			_, err := svc.Ask(ctx, assistant.AskInput{UserID: userID, Question: "anything?"})
			Expect(err).To(MatchError(assistant.ErrUnavailable))
		})
	})
})
