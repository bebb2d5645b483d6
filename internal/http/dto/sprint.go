package dto

import (
	"time"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
)

type CreateSprintRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=255"`
	Goal      string     `json:"goal" binding:"max=2000"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type UpdateSprintRequest struct {
	Name      *string    `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Goal      *string    `json:"goal,omitempty" binding:"omitempty,max=2000"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type CompleteSprintRequest struct {
	MoveToSprintID *int64 `json:"move_to_sprint_id,string,omitempty"`
}

type SprintResponse struct {
	ID              int64      `json:"id,string"`
	ProjectID       int64      `json:"project_id,string"`
	Name            string     `json:"name"`
	Goal            string     `json:"goal,omitempty"`
	Status          string     `json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CommittedPoints int32      `json:"committed_points"`
	CompletedPoints int32      `json:"completed_points"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func ToSprintResponse(s *model.Sprint) *SprintResponse {
	return &SprintResponse{
		ID:              s.ID,
		ProjectID:       s.ProjectID,
		Name:            s.Name,
		Goal:            s.Goal,
		Status:          string(s.Status),
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		CommittedPoints: s.CommittedPoints,
		CompletedPoints: s.CompletedPoints,
		CreatedAt:       s.CreatedAt,
		CompletedAt:     s.CompletedAt,
	}
}

func ToSprintResponses(sprints []model.Sprint) []SprintResponse {
	out := make([]SprintResponse, 0, len(sprints))
	for i := range sprints {
		out = append(out, *ToSprintResponse(&sprints[i]))
	}
	return out
}

type SprintProgressResponse struct {
	TotalIssues       int64 `json:"total_issues"`
	CompletedIssues   int64 `json:"completed_issues"`
	TotalPoints       int64 `json:"total_points"`
	CompletedPoints   int64 `json:"completed_points"`
	BlockedIssues     int64 `json:"blocked_issues"`
	UnestimatedIssues int64 `json:"unestimated_issues"`
}

func ToSprintProgressResponse(p *model.SprintProgress) *SprintProgressResponse {
	return &SprintProgressResponse{
		TotalIssues:       p.TotalIssues,
		CompletedIssues:   p.CompletedIssues,
		TotalPoints:       p.TotalPoints,
		CompletedPoints:   p.CompletedPoints,
		BlockedIssues:     p.BlockedIssues,
		UnestimatedIssues: p.UnestimatedIssues,
	}
}

type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}

type BoardColumnResponse struct {
	Status StatusResponse  `json:"status"`
	Issues []IssueResponse `json:"issues"`
}

func ToBoardResponse(columns []service.BoardColumn, projectKey string) *BoardResponse {
	out := make([]BoardColumnResponse, 0, len(columns))
	for _, col := range columns {
		out = append(out, BoardColumnResponse{
			Status: ToStatusResponse(col.Status),
			Issues: ToIssueResponses(col.Issues, projectKey),
		})
	}
	return &BoardResponse{Columns: out}
}
