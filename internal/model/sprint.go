package model

import "time"

type SprintStatus string

const (
	SprintStatusPlanning  SprintStatus = "planning"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
	SprintStatusCancelled SprintStatus = "cancelled"
)

type Sprint struct {
	ID              int64        `json:"id"`
	ProjectID       int64        `json:"project_id"`
	Name            string       `json:"name"`
	Goal            string       `json:"goal"`
	Status          SprintStatus `json:"status"`
	StartDate       *time.Time   `json:"start_date,omitempty"`
	EndDate         *time.Time   `json:"end_date,omitempty"`
	CommittedPoints int32        `json:"committed_points"`
	CompletedPoints int32        `json:"completed_points"`
	CreatedBy       int64        `json:"created_by"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
}

// SprintProgress is a point-in-time aggregate over a sprint's issues.
type SprintProgress struct {
	TotalIssues       int64 `json:"total_issues"`
	CompletedIssues   int64 `json:"completed_issues"`
	TotalPoints       int64 `json:"total_points"`
	CompletedPoints   int64 `json:"completed_points"`
	BlockedIssues     int64 `json:"blocked_issues"`
	UnestimatedIssues int64 `json:"unestimated_issues"`
}
