package queue_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"ficct.app/scrum/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	xmsg := func(values map[string]any) redis.XMessage {
		return redis.XMessage{ID: "1700000000000-0", Values: values}
	}

	It("parses an index task", func() {
		msg, err := queue.ParseMessage(xmsg(map[string]any{
			"task_type": "index_issue",
			"issue_id":  "42",
			"force":     "1",
			"trace_id":  "4bf92f3577b34da6a3ce929d0e0e4736",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.TaskType).To(Equal(queue.TaskTypeIndexIssue))
		Expect(msg.IssueID).To(HaveValue(Equal(int64(42))))
		Expect(msg.Force).To(BeTrue())
		Expect(msg.TraceID).To(Equal("4bf92f3577b34da6a3ce929d0e0e4736"))
		Expect(msg.ID).To(Equal("1700000000000-0"))
	})

	It("defaults the attempt to one", func() {
		msg, err := queue.ParseMessage(xmsg(map[string]any{
			"task_type": "remove_issue",
			"issue_id":  "42",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})

	It("keeps the attempt of a requeued message", func() {
		msg, err := queue.ParseMessage(xmsg(map[string]any{
			"task_type": "index_issue",
			"issue_id":  "42",
			"attempt":   "3",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(3))
	})

	It("parses an invalidate task", func() {
		msg, err := queue.ParseMessage(xmsg(map[string]any{
			"task_type":   "invalidate_summary",
			"entity_type": "sprint",
			"entity_id":   "7",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.EntityType).To(Equal("sprint"))
		Expect(msg.EntityID).To(HaveValue(Equal(int64(7))))
	})

	DescribeTable("rejects incomplete messages",
		func(values map[string]any, fragment string) {
			_, err := queue.ParseMessage(xmsg(values))
			Expect(err).To(MatchError(ContainSubstring(fragment)))
		},
		Entry("no task type",
			map[string]any{"issue_id": "42"}, "missing task_type"),
		Entry("unknown task type",
			map[string]any{"task_type": "compact_stream"}, "unknown task_type"),
		Entry("index without issue",
			map[string]any{"task_type": "index_issue"}, "missing issue_id"),
		Entry("reindex without project",
			map[string]any{"task_type": "reindex_project"}, "missing project_id"),
		Entry("scan without project",
			map[string]any{"task_type": "scan_anomalies"}, "missing project_id"),
		Entry("invalidate without entity",
			map[string]any{"task_type": "invalidate_summary", "entity_type": "issue"}, "missing entity_type or entity_id"),
		Entry("unparseable id",
			map[string]any{"task_type": "index_issue", "issue_id": "forty-two"}, "parsing issue_id"),
		Entry("unparseable attempt",
			map[string]any{"task_type": "index_issue", "issue_id": "42", "attempt": "x"}, "parsing attempt"),
	)
})
