package assistant

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/common/llm"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

type stubIssueStore struct {
	store.IssueStore
	issue    *model.Issue
	comments []model.IssueComment
}

func (s *stubIssueStore) GetByID(_ context.Context, _ int64) (*model.Issue, error) {
	return s.issue, nil
}

func (s *stubIssueStore) ListComments(_ context.Context, _ int64) ([]model.IssueComment, error) {
	return s.comments, nil
}

type stubSummaryStore struct {
	store.SummaryStore
	cached     *model.Summary
	cachedHash string
	upserts    int
	deleted    []int64
}

func (s *stubSummaryStore) Get(_ context.Context, _ string, _ int64, _ model.SummaryLength) (*model.Summary, string, error) {
	if s.cached == nil {
		return nil, "", store.ErrNotFound
	}
	return s.cached, s.cachedHash, nil
}

func (s *stubSummaryStore) Upsert(_ context.Context, _ string, _ int64, _ model.SummaryLength, _, _ string) error {
	s.upserts++
	return nil
}

func (s *stubSummaryStore) DeleteByEntity(_ context.Context, _ string, entityID int64) error {
	s.deleted = append(s.deleted, entityID)
	return nil
}

type stubGenerator struct {
	calls int
	resp  *llm.Response
}

func (g *stubGenerator) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	g.calls++
	return g.resp, nil
}

var _ = Describe("Summarizer", func() {
	var (
		ctx       context.Context
		issues    *stubIssueStore
		summaries *stubSummaryStore
		generator *stubGenerator
		s         *summarizer
	)

	// The content the summarizer builds for the stub issue below. The
	// cache key is its hash, so cache specs need it verbatim.
	const issueContent = "Issue: Checkout timeout\nPriority: P2\nDiscussion:\n- retry helped\n"

	BeforeEach(func() {
		ctx = context.Background()
		issues = &stubIssueStore{
			issue:    &model.Issue{ID: 11, Title: "Checkout timeout", Priority: model.PriorityP2},
			comments: []model.IssueComment{{Body: "retry helped"}},
		}
		summaries = &stubSummaryStore{}
		generator = &stubGenerator{resp: &llm.Response{Content: "Checkout times out under load.", Provider: "bedrock"}}
		s = &summarizer{
			issueStore:   issues,
			summaryStore: summaries,
			generator:    generator,
		}
	})

	It("generates and caches a fresh summary", func() {
		summary, err := s.SummarizeIssue(ctx, 11, model.SummaryLengthStandard)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Content).To(Equal("Checkout times out under load."))
		Expect(summary.Cached).To(BeFalse())
		Expect(generator.calls).To(Equal(1))
		Expect(summaries.upserts).To(Equal(1))
	})

	It("serves from the cache while the content hash matches", func() {
		summaries.cached = &model.Summary{EntityType: EntityTypeIssue, EntityID: 11, Content: "old summary"}
		summaries.cachedHash = contentHash(issueContent)

		summary, err := s.SummarizeIssue(ctx, 11, model.SummaryLengthStandard)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Content).To(Equal("old summary"))
		Expect(summary.Cached).To(BeTrue())
		Expect(generator.calls).To(BeZero())
	})

	It("regenerates when the source content changed", func() {
		summaries.cached = &model.Summary{EntityType: EntityTypeIssue, EntityID: 11, Content: "stale summary"}
		summaries.cachedHash = contentHash("something else entirely")

		summary, err := s.SummarizeIssue(ctx, 11, model.SummaryLengthStandard)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Content).To(Equal("Checkout times out under load."))
		Expect(summary.Cached).To(BeFalse())
		Expect(generator.calls).To(Equal(1))
	})

	It("defaults the length to standard", func() {
		summary, err := s.SummarizeIssue(ctx, 11, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Length).To(Equal(model.SummaryLengthStandard))
	})

	It("rejects unknown lengths", func() {
		_, err := s.SummarizeIssue(ctx, 11, model.SummaryLength("epic"))
		Expect(err).To(MatchError(ContainSubstring("invalid summary length")))
	})

	It("is unavailable without a generator", func() {
		s.generator = nil
		_, err := s.SummarizeIssue(ctx, 11, model.SummaryLengthShort)
		Expect(err).To(MatchError(ErrUnavailable))
	})

	It("drops the cache entry on invalidate", func() {
		Expect(s.Invalidate(ctx, EntityTypeIssue, 11)).To(Succeed())
		Expect(summaries.deleted).To(Equal([]int64{11}))
	})
})
