package store

import (
	"ficct.app/scrum/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Workspaces() WorkspaceStore {
	return newWorkspaceStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) Workflows() WorkflowStore {
	return newWorkflowStore(s.queries)
}

func (s *Stores) Sprints() SprintStore {
	return newSprintStore(s.queries)
}

func (s *Stores) Issues() IssueStore {
	return newIssueStore(s.queries)
}

func (s *Stores) Embeddings() EmbeddingStore {
	return newEmbeddingStore(s.queries)
}

func (s *Stores) Chats() ChatStore {
	return newChatStore(s.queries)
}

func (s *Stores) Summaries() SummaryStore {
	return newSummaryStore(s.queries)
}

func (s *Stores) Anomalies() AnomalyStore {
	return newAnomalyStore(s.queries)
}

func (s *Stores) Notifications() NotificationStore {
	return newNotificationStore(s.queries)
}
