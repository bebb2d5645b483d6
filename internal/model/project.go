package model

import "time"

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
	MemberRoleViewer MemberRole = "viewer"
)

// IssueTypeCategory groups issue types for estimation and anomaly
// logic. Subtasks are exempt from the unestimated-issue check.
type IssueTypeCategory string

const (
	IssueTypeCategoryEpic    IssueTypeCategory = "epic"
	IssueTypeCategoryStory   IssueTypeCategory = "story"
	IssueTypeCategoryTask    IssueTypeCategory = "task"
	IssueTypeCategoryBug     IssueTypeCategory = "bug"
	IssueTypeCategorySubtask IssueTypeCategory = "subtask"
)

type StatusCategory string

const (
	StatusCategoryTodo       StatusCategory = "todo"
	StatusCategoryInProgress StatusCategory = "in_progress"
	StatusCategoryDone       StatusCategory = "done"
)

type Project struct {
	ID          int64         `json:"id"`
	WorkspaceID int64         `json:"workspace_id"`
	Name        string        `json:"name"`
	Key         string        `json:"key"`
	Description *string       `json:"description,omitempty"`
	LeadID      *int64        `json:"lead_id,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	IsDeleted   bool          `json:"-"`
}

type ProjectMember struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	UserID    int64      `json:"user_id"`
	Role      MemberRole `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

type IssueType struct {
	ID        int64             `json:"id"`
	ProjectID int64             `json:"project_id"`
	Name      string            `json:"name"`
	Category  IssueTypeCategory `json:"category"`
	Position  int32             `json:"position"`
	CreatedAt time.Time         `json:"created_at"`
}

type WorkflowStatus struct {
	ID        int64          `json:"id"`
	ProjectID int64          `json:"project_id"`
	Name      string         `json:"name"`
	Category  StatusCategory `json:"category"`
	IsInitial bool           `json:"is_initial"`
	IsFinal   bool           `json:"is_final"`
	Position  int32          `json:"position"`
	CreatedAt time.Time      `json:"created_at"`
}

type WorkflowTransition struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	FromStatusID int64     `json:"from_status_id"`
	ToStatusID   int64     `json:"to_status_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
