package dto

import (
	"time"

	"ficct.app/scrum/internal/model"
)

type CreateIssueRequest struct {
	IssueTypeID    int64    `json:"issue_type_id,string" binding:"required"`
	Title          string   `json:"title" binding:"required,min=1,max=500"`
	Description    string   `json:"description" binding:"max=50000"`
	Priority       string   `json:"priority" binding:"omitempty,oneof=P1 P2 P3 P4"`
	SprintID       *int64   `json:"sprint_id,string,omitempty"`
	ParentID       *int64   `json:"parent_id,string,omitempty"`
	AssigneeID     *int64   `json:"assignee_id,string,omitempty"`
	StoryPoints    *int32   `json:"story_points,omitempty" binding:"omitempty,min=0,max=100"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" binding:"omitempty,min=0"`
}

type UpdateIssueRequest struct {
	Title          *string  `json:"title,omitempty" binding:"omitempty,min=1,max=500"`
	Description    *string  `json:"description,omitempty" binding:"omitempty,max=50000"`
	Priority       *string  `json:"priority,omitempty" binding:"omitempty,oneof=P1 P2 P3 P4"`
	IssueTypeID    *int64   `json:"issue_type_id,string,omitempty"`
	AssigneeID     *int64   `json:"assignee_id,string,omitempty"`
	ClearAssignee  bool     `json:"clear_assignee,omitempty"`
	StoryPoints    *int32   `json:"story_points,omitempty" binding:"omitempty,min=0,max=100"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" binding:"omitempty,min=0"`
	ActualHours    *float64 `json:"actual_hours,omitempty" binding:"omitempty,min=0"`
	IsBlocked      *bool    `json:"is_blocked,omitempty"`
	Rank           *int32   `json:"rank,omitempty"`
}

type TransitionIssueRequest struct {
	ToStatusID int64 `json:"to_status_id,string" binding:"required"`
}

type MoveIssueRequest struct {
	SprintID *int64 `json:"sprint_id,string"`
}

type IssueResponse struct {
	ID             int64      `json:"id,string"`
	ProjectID      int64      `json:"project_id,string"`
	IssueTypeID    int64      `json:"issue_type_id,string"`
	StatusID       int64      `json:"status_id,string"`
	SprintID       *int64     `json:"sprint_id,string,omitempty"`
	ParentID       *int64     `json:"parent_id,string,omitempty"`
	Key            string     `json:"key,omitempty"`
	KeyNumber      int64      `json:"key_number"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority"`
	AssigneeID     *int64     `json:"assignee_id,string,omitempty"`
	ReporterID     int64      `json:"reporter_id,string"`
	StoryPoints    *int32     `json:"story_points,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	IsBlocked      bool       `json:"is_blocked"`
	Rank           int32      `json:"rank"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

func ToIssueResponse(issue *model.Issue, projectKey string) *IssueResponse {
	resp := &IssueResponse{
		ID:             issue.ID,
		ProjectID:      issue.ProjectID,
		IssueTypeID:    issue.IssueTypeID,
		StatusID:       issue.StatusID,
		SprintID:       issue.SprintID,
		ParentID:       issue.ParentID,
		KeyNumber:      issue.KeyNumber,
		Title:          issue.Title,
		Description:    issue.Description,
		Priority:       string(issue.Priority),
		AssigneeID:     issue.AssigneeID,
		ReporterID:     issue.ReporterID,
		StoryPoints:    issue.StoryPoints,
		EstimatedHours: issue.EstimatedHours,
		ActualHours:    issue.ActualHours,
		IsBlocked:      issue.IsBlocked,
		Rank:           issue.Rank,
		CreatedAt:      issue.CreatedAt,
		UpdatedAt:      issue.UpdatedAt,
		ResolvedAt:     issue.ResolvedAt,
	}
	if projectKey != "" {
		resp.Key = issue.Key(projectKey)
	}
	return resp
}

func ToIssueResponses(issues []model.Issue, projectKey string) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		out = append(out, *ToIssueResponse(&issues[i], projectKey))
	}
	return out
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=20000"`
}

type CommentResponse struct {
	ID        int64     `json:"id,string"`
	IssueID   int64     `json:"issue_id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCommentResponse(c *model.IssueComment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		IssueID:   c.IssueID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCommentResponses(comments []model.IssueComment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *ToCommentResponse(&comments[i]))
	}
	return out
}

type CreateLinkRequest struct {
	TargetIssueID int64  `json:"target_issue_id,string" binding:"required"`
	LinkType      string `json:"link_type" binding:"required,oneof=blocks duplicates relates_to"`
}

type LinkResponse struct {
	ID            int64     `json:"id,string"`
	SourceIssueID int64     `json:"source_issue_id,string"`
	TargetIssueID int64     `json:"target_issue_id,string"`
	LinkType      string    `json:"link_type"`
	CreatedBy     int64     `json:"created_by,string"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToLinkResponse(l *model.IssueLink) *LinkResponse {
	return &LinkResponse{
		ID:            l.ID,
		SourceIssueID: l.SourceIssueID,
		TargetIssueID: l.TargetIssueID,
		LinkType:      string(l.LinkType),
		CreatedBy:     l.CreatedBy,
		CreatedAt:     l.CreatedAt,
	}
}

func ToLinkResponses(links []model.IssueLink) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for i := range links {
		out = append(out, *ToLinkResponse(&links[i]))
	}
	return out
}
