package store

import (
	"context"
	"errors"
	"time"

	"ficct.app/scrum/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	ListByIDs(ctx context.Context, ids []int64) ([]model.User, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error // soft delete
	List(ctx context.Context) ([]model.Organization, error)
}

// WorkspaceStore defines the contract for workspace data access
type WorkspaceStore interface {
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetByOrgAndSlug(ctx context.Context, orgID int64, slug string) (*model.Workspace, error)
	Create(ctx context.Context, ws *model.Workspace) error
	Update(ctx context.Context, ws *model.Workspace) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Workspace, error)
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	GetByKey(ctx context.Context, workspaceID int64, key string) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	// NextKeyNumber increments and returns the project's issue key
	// sequence. Call inside the same transaction that inserts the issue.
	NextKeyNumber(ctx context.Context, projectID int64) (int64, error)
	AddMember(ctx context.Context, m *model.ProjectMember) error
	GetMember(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
	ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, userID int64) error
}

// WorkflowStore defines the contract for issue types, statuses and
// transition rules
type WorkflowStore interface {
	CreateIssueType(ctx context.Context, t *model.IssueType) error
	GetIssueType(ctx context.Context, id int64) (*model.IssueType, error)
	ListIssueTypes(ctx context.Context, projectID int64) ([]model.IssueType, error)
	CreateStatus(ctx context.Context, s *model.WorkflowStatus) error
	GetStatus(ctx context.Context, id int64) (*model.WorkflowStatus, error)
	GetInitialStatus(ctx context.Context, projectID int64) (*model.WorkflowStatus, error)
	ListStatuses(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error)
	CreateTransition(ctx context.Context, t *model.WorkflowTransition) error
	TransitionExists(ctx context.Context, projectID, fromStatusID, toStatusID int64) (bool, error)
	ListTransitionsFrom(ctx context.Context, projectID, fromStatusID int64) ([]model.WorkflowStatus, error)
}

// SprintStore defines the contract for sprint data access
type SprintStore interface {
	GetByID(ctx context.Context, id int64) (*model.Sprint, error)
	Create(ctx context.Context, s *model.Sprint) error
	Update(ctx context.Context, s *model.Sprint) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Sprint, error)
	GetActive(ctx context.Context, projectID int64) (*model.Sprint, error)
	ListCompleted(ctx context.Context, projectID int64, limit int32) ([]model.Sprint, error)
	Start(ctx context.Context, id int64, start, end time.Time, committedPoints int32) (*model.Sprint, error)
	Complete(ctx context.Context, id int64, completedPoints int32) (*model.Sprint, error)
}

// IssueFilter narrows ListIssues. Nil fields match everything.
type IssueFilter struct {
	SprintID   *int64
	StatusID   *int64
	AssigneeID *int64
	Priority   *model.Priority
	Search     *string
}

// IssueStore defines the contract for issue data access
type IssueStore interface {
	GetByID(ctx context.Context, id int64) (*model.Issue, error)
	GetByKey(ctx context.Context, projectID, keyNumber int64) (*model.Issue, error)
	Create(ctx context.Context, issue *model.Issue) error
	Update(ctx context.Context, issue *model.Issue) error
	UpdateStatus(ctx context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error)
	MoveToSprint(ctx context.Context, id int64, sprintID *int64) (*model.Issue, error)
	Delete(ctx context.Context, id int64) error // soft delete
	List(ctx context.Context, projectID int64, filter IssueFilter) ([]model.Issue, error)
	ListBySprint(ctx context.Context, sprintID int64) ([]model.Issue, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Issue, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Issue, error)
	SprintProgress(ctx context.Context, sprintID int64) (*model.SprintProgress, error)
	CountAddedAfter(ctx context.Context, sprintID int64, after time.Time) (int64, error)
	AssigneeLoad(ctx context.Context, sprintID int64) (map[int64]int64, error)
	ListStale(ctx context.Context, projectID int64, cutoff time.Time) ([]model.Issue, error)
	ListResolvedByType(ctx context.Context, projectID, issueTypeID int64, limit int32) ([]model.Issue, error)
	CountOpenByAssignee(ctx context.Context, projectID, assigneeID int64) (int64, error)
	CreateComment(ctx context.Context, c *model.IssueComment) error
	ListComments(ctx context.Context, issueID int64) ([]model.IssueComment, error)
	CreateLink(ctx context.Context, l *model.IssueLink) error
	ListLinks(ctx context.Context, issueID int64) ([]model.IssueLink, error)
}

// EmbeddingStore tracks which issues are indexed in the vector store
type EmbeddingStore interface {
	Upsert(ctx context.Context, issueID, projectID int64, vectorID, contentHash string) (*model.IssueEmbedding, error)
	Get(ctx context.Context, issueID int64) (*model.IssueEmbedding, error)
	Delete(ctx context.Context, issueID int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.IssueEmbedding, error)
	ListIndexed(ctx context.Context) ([]model.IssueEmbedding, error)
}

// ChatStore defines the contract for assistant conversation persistence
type ChatStore interface {
	CreateConversation(ctx context.Context, c *model.ChatConversation) error
	GetConversation(ctx context.Context, id int64) (*model.ChatConversation, error)
	ListConversations(ctx context.Context, userID int64) ([]model.ChatConversation, error)
	TouchConversation(ctx context.Context, id int64) error
	CreateMessage(ctx context.Context, m *model.ChatMessage) error
	ListMessages(ctx context.Context, conversationID int64) ([]model.ChatMessage, error)
}

// SummaryStore caches generated summaries keyed by content hash
type SummaryStore interface {
	Get(ctx context.Context, entityType string, entityID int64, length model.SummaryLength) (*model.Summary, string, error)
	Upsert(ctx context.Context, entityType string, entityID int64, length model.SummaryLength, contentHash, summary string) error
	DeleteByEntity(ctx context.Context, entityType string, entityID int64) error
}

// AnomalyStore defines the contract for detected anomaly persistence
type AnomalyStore interface {
	Create(ctx context.Context, a *model.Anomaly) error
	ListOpenByProject(ctx context.Context, projectID int64) ([]model.Anomaly, error)
	Resolve(ctx context.Context, id int64) error
	ResolveByType(ctx context.Context, projectID int64, anomalyType model.AnomalyType) error
}

// NotificationStore defines the contract for in-app notification data access
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	// MarkRead is scoped to the recipient so a user can never read
	// someone else's notification. Idempotent on already-read rows.
	MarkRead(ctx context.Context, id, recipientID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
}
