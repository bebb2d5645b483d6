package assistant

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/common/vector"
)

var _ = Describe("Route", func() {
	DescribeTable("intent classification",
		func(question string, intent Intent) {
			Expect(Route(question).Intent).To(Equal(intent))
		},
		Entry("explicit priority level", "show me all P1 bugs", IntentPriority),
		Entry("critical keyword", "any critical issues in checkout?", IntentPriority),
		Entry("Spanish urgency", "¿hay problemas urgentes?", IntentPriority),
		Entry("assignee question", "who is working on the payment flow?", IntentMember),
		Entry("Spanish assignee question", "¿quién está trabajando en la API?", IntentMember),
		Entry("sprint question", "how is the sprint going?", IntentSprint),
		Entry("Spanish velocity question", "cuál es la velocidad del equipo", IntentSprint),
		Entry("blocked question", "what is blocked right now?", IntentStatus),
		Entry("Spanish status question", "qué está bloqueado", IntentStatus),
		Entry("temporal question", "what changed this week?", IntentTemporal),
		Entry("fallback", "tell me about the checkout redesign", IntentGeneral),
	)

	It("prefers priority over member context in mixed questions", func() {
		strategy := Route("who is working on urgent bugs?")
		Expect(strategy.Intent).To(Equal(IntentPriority))
		Expect(strategy.Filter).To(HaveKey("priority"))
	})

	It("filters on the names it finds", func() {
		strategy := Route("what is Ana García doing?")
		Expect(strategy.Intent).To(Equal(IntentMember))
		Expect(strategy.Filter).To(HaveKeyWithValue("assignee_name",
			map[string]any{"$in": []string{"Ana García"}}))
	})

	It("searches both issue and sprint namespaces for sprint questions", func() {
		strategy := Route("summarize the current iteration")
		Expect(strategy.Namespaces).To(ConsistOf(vector.NamespaceIssues, vector.NamespaceSprints))
	})

	It("uses the blocked flag instead of a status category for blocked questions", func() {
		strategy := Route("which issues are blocked?")
		Expect(strategy.Filter).To(HaveKeyWithValue("is_blocked", true))
	})

	It("bounds temporal queries to the last thirty days", func() {
		strategy := Route("show me the latest issues")
		Expect(strategy.Filter).To(HaveKey("updated_at"))
	})
})

var _ = Describe("detectPriorities", func() {
	It("maps critical and urgent to P1 and P2", func() {
		Expect(detectPriorities("critical and urgent stuff")).To(Equal([]string{"P1", "P2"}))
	})

	It("deduplicates levels mentioned twice", func() {
		Expect(detectPriorities("p1 bugs, also P1 tasks")).To(Equal([]string{"P1"}))
	})

	It("recognises explicit levels", func() {
		Expect(detectPriorities("anything at p4?")).To(Equal([]string{"P4"}))
	})

	It("finds nothing in neutral text", func() {
		Expect(detectPriorities("how is the checkout flow")).To(BeEmpty())
	})
})

var _ = Describe("detectNames", func() {
	It("finds full names", func() {
		Expect(detectNames("what has Ana García shipped?")).To(Equal([]string{"Ana García"}))
	})

	It("skips question words at the start of a full-name match", func() {
		Expect(detectNames("Is Bruno available?")).To(Equal([]string{"Bruno"}))
	})

	It("falls back to single capitalized words mid-sentence", func() {
		Expect(detectNames("is Bruno overloaded?")).To(Equal([]string{"Bruno"}))
	})

	It("ignores the sentence-leading capital", func() {
		Expect(detectNames("Issues in the backlog")).To(BeEmpty())
	})
})
