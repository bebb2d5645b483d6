package model

import (
	"fmt"
	"time"
)

// Priority follows the P1 (highest) to P4 (lowest) convention.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

type LinkType string

const (
	LinkTypeBlocks     LinkType = "blocks"
	LinkTypeDuplicates LinkType = "duplicates"
	LinkTypeRelatesTo  LinkType = "relates_to"
)

type Issue struct {
	ID             int64      `json:"id"`
	ProjectID      int64      `json:"project_id"`
	IssueTypeID    int64      `json:"issue_type_id"`
	StatusID       int64      `json:"status_id"`
	SprintID       *int64     `json:"sprint_id,omitempty"`
	ParentID       *int64     `json:"parent_id,omitempty"`
	KeyNumber      int64      `json:"key_number"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       Priority   `json:"priority"`
	AssigneeID     *int64     `json:"assignee_id,omitempty"`
	ReporterID     int64      `json:"reporter_id"`
	StoryPoints    *int32     `json:"story_points,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	IsBlocked      bool       `json:"is_blocked"`
	Rank           int32      `json:"rank"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	IsDeleted      bool       `json:"-"`
}

// Key renders the human-readable issue key, e.g. "PAY-42".
func (i Issue) Key(projectKey string) string {
	return fmt.Sprintf("%s-%d", projectKey, i.KeyNumber)
}

type IssueComment struct {
	ID        int64     `json:"id"`
	IssueID   int64     `json:"issue_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type IssueLink struct {
	ID            int64     `json:"id"`
	SourceIssueID int64     `json:"source_issue_id"`
	TargetIssueID int64     `json:"target_issue_id"`
	LinkType      LinkType  `json:"link_type"`
	CreatedBy     int64     `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// IssueEmbedding tracks what content of an issue is currently indexed
// in the vector store, keyed by a sha256 content hash for dedup.
type IssueEmbedding struct {
	IssueID     int64      `json:"issue_id"`
	ProjectID   int64      `json:"project_id"`
	VectorID    string     `json:"vector_id"`
	ContentHash string     `json:"content_hash"`
	IsIndexed   bool       `json:"is_indexed"`
	IndexedAt   *time.Time `json:"indexed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
