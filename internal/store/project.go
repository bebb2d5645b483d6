package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) GetByKey(ctx context.Context, workspaceID int64, key string) (*model.Project, error) {
	row, err := s.queries.GetProjectByKey(ctx, sqlc.GetProjectByKeyParams{
		WorkspaceID: workspaceID,
		Key:         key,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Create(ctx context.Context, p *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		LeadID:      p.LeadID,
	})
	if err != nil {
		return err
	}
	*p = *toProjectModel(row)
	return nil
}

func (s *projectStore) Update(ctx context.Context, p *model.Project) error {
	row, err := s.queries.UpdateProject(ctx, sqlc.UpdateProjectParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		LeadID:      p.LeadID,
		Status:      string(p.Status),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*p = *toProjectModel(row)
	return nil
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	return s.queries.SoftDeleteProject(ctx, id)
}

func (s *projectStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	rows, err := s.queries.ListProjectsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toProjectModels(rows), nil
}

func (s *projectStore) List(ctx context.Context) ([]model.Project, error) {
	rows, err := s.queries.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return toProjectModels(rows), nil
}

func (s *projectStore) NextKeyNumber(ctx context.Context, projectID int64) (int64, error) {
	n, err := s.queries.NextIssueKeyNumber(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

func (s *projectStore) AddMember(ctx context.Context, m *model.ProjectMember) error {
	row, err := s.queries.AddProjectMember(ctx, sqlc.AddProjectMemberParams{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      string(m.Role),
	})
	if err != nil {
		return err
	}
	*m = *toProjectMemberModel(row)
	return nil
}

func (s *projectStore) GetMember(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	row, err := s.queries.GetProjectMember(ctx, sqlc.GetProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectMemberModel(row), nil
}

func (s *projectStore) ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	rows, err := s.queries.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members := make([]model.ProjectMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, *toProjectMemberModel(row))
	}
	return members, nil
}

func (s *projectStore) RemoveMember(ctx context.Context, projectID, userID int64) error {
	return s.queries.RemoveProjectMember(ctx, sqlc.RemoveProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Key:         row.Key,
		Description: row.Description,
		LeadID:      row.LeadID,
		Status:      model.ProjectStatus(row.Status),
		CreatedAt:   fromTimestamptz(row.CreatedAt),
		UpdatedAt:   fromTimestamptz(row.UpdatedAt),
		IsDeleted:   row.IsDeleted,
	}
}

func toProjectModels(rows []sqlc.Project) []model.Project {
	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, *toProjectModel(row))
	}
	return projects
}

func toProjectMemberModel(row sqlc.ProjectMember) *model.ProjectMember {
	return &model.ProjectMember{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		UserID:    row.UserID,
		Role:      model.MemberRole(row.Role),
		IsActive:  row.IsActive,
		CreatedAt: fromTimestamptz(row.CreatedAt),
	}
}
