package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type workflowStore struct {
	queries *sqlc.Queries
}

func newWorkflowStore(queries *sqlc.Queries) WorkflowStore {
	return &workflowStore{queries: queries}
}

func (s *workflowStore) CreateIssueType(ctx context.Context, t *model.IssueType) error {
	row, err := s.queries.CreateIssueType(ctx, sqlc.CreateIssueTypeParams{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Name:      t.Name,
		Category:  string(t.Category),
		Position:  t.Position,
	})
	if err != nil {
		return err
	}
	*t = *toIssueTypeModel(row)
	return nil
}

func (s *workflowStore) GetIssueType(ctx context.Context, id int64) (*model.IssueType, error) {
	row, err := s.queries.GetIssueType(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueTypeModel(row), nil
}

func (s *workflowStore) ListIssueTypes(ctx context.Context, projectID int64) ([]model.IssueType, error) {
	rows, err := s.queries.ListIssueTypesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	types := make([]model.IssueType, 0, len(rows))
	for _, row := range rows {
		types = append(types, *toIssueTypeModel(row))
	}
	return types, nil
}

func (s *workflowStore) CreateStatus(ctx context.Context, status *model.WorkflowStatus) error {
	row, err := s.queries.CreateWorkflowStatus(ctx, sqlc.CreateWorkflowStatusParams{
		ID:        status.ID,
		ProjectID: status.ProjectID,
		Name:      status.Name,
		Category:  string(status.Category),
		IsInitial: status.IsInitial,
		IsFinal:   status.IsFinal,
		Position:  status.Position,
	})
	if err != nil {
		return err
	}
	*status = *toWorkflowStatusModel(row)
	return nil
}

func (s *workflowStore) GetStatus(ctx context.Context, id int64) (*model.WorkflowStatus, error) {
	row, err := s.queries.GetWorkflowStatus(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWorkflowStatusModel(row), nil
}

func (s *workflowStore) GetInitialStatus(ctx context.Context, projectID int64) (*model.WorkflowStatus, error) {
	row, err := s.queries.GetInitialStatus(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWorkflowStatusModel(row), nil
}

func (s *workflowStore) ListStatuses(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error) {
	rows, err := s.queries.ListWorkflowStatusesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toWorkflowStatusModels(rows), nil
}

func (s *workflowStore) CreateTransition(ctx context.Context, t *model.WorkflowTransition) error {
	row, err := s.queries.CreateWorkflowTransition(ctx, sqlc.CreateWorkflowTransitionParams{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		FromStatusID: t.FromStatusID,
		ToStatusID:   t.ToStatusID,
	})
	if err != nil {
		return err
	}
	*t = model.WorkflowTransition{
		ID:           row.ID,
		ProjectID:    row.ProjectID,
		FromStatusID: row.FromStatusID,
		ToStatusID:   row.ToStatusID,
		IsActive:     row.IsActive,
		CreatedAt:    fromTimestamptz(row.CreatedAt),
	}
	return nil
}

func (s *workflowStore) TransitionExists(ctx context.Context, projectID, fromStatusID, toStatusID int64) (bool, error) {
	return s.queries.TransitionExists(ctx, sqlc.TransitionExistsParams{
		ProjectID:    projectID,
		FromStatusID: fromStatusID,
		ToStatusID:   toStatusID,
	})
}

func (s *workflowStore) ListTransitionsFrom(ctx context.Context, projectID, fromStatusID int64) ([]model.WorkflowStatus, error) {
	rows, err := s.queries.ListTransitionsFromStatus(ctx, sqlc.ListTransitionsFromStatusParams{
		ProjectID:    projectID,
		FromStatusID: fromStatusID,
	})
	if err != nil {
		return nil, err
	}
	return toWorkflowStatusModels(rows), nil
}

func toIssueTypeModel(row sqlc.IssueType) *model.IssueType {
	return &model.IssueType{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Name:      row.Name,
		Category:  model.IssueTypeCategory(row.Category),
		Position:  row.Position,
		CreatedAt: fromTimestamptz(row.CreatedAt),
	}
}

func toWorkflowStatusModel(row sqlc.WorkflowStatus) *model.WorkflowStatus {
	return &model.WorkflowStatus{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Name:      row.Name,
		Category:  model.StatusCategory(row.Category),
		IsInitial: row.IsInitial,
		IsFinal:   row.IsFinal,
		Position:  row.Position,
		CreatedAt: fromTimestamptz(row.CreatedAt),
	}
}

func toWorkflowStatusModels(rows []sqlc.WorkflowStatus) []model.WorkflowStatus {
	statuses := make([]model.WorkflowStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, *toWorkflowStatusModel(row))
	}
	return statuses
}
