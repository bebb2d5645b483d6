package dto

import (
	"time"

	"ficct.app/scrum/internal/model"
)

type CreateProjectRequest struct {
	WorkspaceID int64   `json:"workspace_id,string" binding:"required"`
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Key         string  `json:"key" binding:"required,min=2,max=10"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	LeadID      *int64  `json:"lead_id,string,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	LeadID      *int64  `json:"lead_id,string,omitempty"`
}

type ProjectResponse struct {
	ID          int64     `json:"id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	Name        string    `json:"name"`
	Key         string    `json:"key"`
	Description *string   `json:"description,omitempty"`
	LeadID      *int64    `json:"lead_id,string,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProjectResponse(p *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		LeadID:      p.LeadID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProjectResponses(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, *ToProjectResponse(&projects[i]))
	}
	return out
}

type AddMemberRequest struct {
	UserID int64  `json:"user_id,string" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin member viewer"`
}

type MemberResponse struct {
	ID        int64     `json:"id,string"`
	ProjectID int64     `json:"project_id,string"`
	UserID    int64     `json:"user_id,string"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMemberResponse(m *model.ProjectMember) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func ToMemberResponses(members []model.ProjectMember) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, *ToMemberResponse(&members[i]))
	}
	return out
}

type IssueTypeResponse struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Position int32  `json:"position"`
}

func ToIssueTypeResponses(types []model.IssueType) []IssueTypeResponse {
	out := make([]IssueTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, IssueTypeResponse{
			ID:       t.ID,
			Name:     t.Name,
			Category: string(t.Category),
			Position: t.Position,
		})
	}
	return out
}

type StatusResponse struct {
	ID        int64  `json:"id,string"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	IsInitial bool   `json:"is_initial"`
	IsFinal   bool   `json:"is_final"`
	Position  int32  `json:"position"`
}

func ToStatusResponse(s model.WorkflowStatus) StatusResponse {
	return StatusResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  string(s.Category),
		IsInitial: s.IsInitial,
		IsFinal:   s.IsFinal,
		Position:  s.Position,
	}
}

func ToStatusResponses(statuses []model.WorkflowStatus) []StatusResponse {
	out := make([]StatusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, ToStatusResponse(s))
	}
	return out
}
