package queue

type TaskType string

const (
	TaskTypeIndexIssue        TaskType = "index_issue"
	TaskTypeRemoveIssue       TaskType = "remove_issue"
	TaskTypeReindexProject    TaskType = "reindex_project"
	TaskTypeInvalidateSummary TaskType = "invalidate_summary"
	TaskTypeScanAnomalies     TaskType = "scan_anomalies"
)

// Task is what producers enqueue. Which fields are required depends on
// the task type: index_issue/remove_issue need IssueID, reindex_project
// and scan_anomalies need ProjectID, invalidate_summary needs
// EntityType+EntityID.
type Task struct {
	TaskType   TaskType
	IssueID    *int64
	ProjectID  *int64
	EntityType string
	EntityID   *int64
	Force      bool
	TraceID    *string
	Attempt    int
}
