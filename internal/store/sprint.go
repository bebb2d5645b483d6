package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type sprintStore struct {
	queries *sqlc.Queries
}

func newSprintStore(queries *sqlc.Queries) SprintStore {
	return &sprintStore{queries: queries}
}

func (s *sprintStore) GetByID(ctx context.Context, id int64) (*model.Sprint, error) {
	row, err := s.queries.GetSprint(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSprintModel(row), nil
}

func (s *sprintStore) Create(ctx context.Context, sprint *model.Sprint) error {
	row, err := s.queries.CreateSprint(ctx, sqlc.CreateSprintParams{
		ID:        sprint.ID,
		ProjectID: sprint.ProjectID,
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		StartDate: toNullableDate(sprint.StartDate),
		EndDate:   toNullableDate(sprint.EndDate),
		CreatedBy: sprint.CreatedBy,
	})
	if err != nil {
		return err
	}
	*sprint = *toSprintModel(row)
	return nil
}

func (s *sprintStore) Update(ctx context.Context, sprint *model.Sprint) error {
	row, err := s.queries.UpdateSprint(ctx, sqlc.UpdateSprintParams{
		ID:        sprint.ID,
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		StartDate: toNullableDate(sprint.StartDate),
		EndDate:   toNullableDate(sprint.EndDate),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*sprint = *toSprintModel(row)
	return nil
}

func (s *sprintStore) ListByProject(ctx context.Context, projectID int64) ([]model.Sprint, error) {
	rows, err := s.queries.ListSprintsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toSprintModels(rows), nil
}

func (s *sprintStore) GetActive(ctx context.Context, projectID int64) (*model.Sprint, error) {
	row, err := s.queries.GetActiveSprint(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSprintModel(row), nil
}

func (s *sprintStore) ListCompleted(ctx context.Context, projectID int64, limit int32) ([]model.Sprint, error) {
	rows, err := s.queries.ListCompletedSprints(ctx, sqlc.ListCompletedSprintsParams{
		ProjectID: projectID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return toSprintModels(rows), nil
}

func (s *sprintStore) Start(ctx context.Context, id int64, start, end time.Time, committedPoints int32) (*model.Sprint, error) {
	row, err := s.queries.StartSprint(ctx, sqlc.StartSprintParams{
		ID:              id,
		StartDate:       toNullableDate(&start),
		EndDate:         toNullableDate(&end),
		CommittedPoints: committedPoints,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSprintModel(row), nil
}

func (s *sprintStore) Complete(ctx context.Context, id int64, completedPoints int32) (*model.Sprint, error) {
	row, err := s.queries.CompleteSprint(ctx, sqlc.CompleteSprintParams{
		ID:              id,
		CompletedPoints: completedPoints,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSprintModel(row), nil
}

func toSprintModel(row sqlc.Sprint) *model.Sprint {
	return &model.Sprint{
		ID:              row.ID,
		ProjectID:       row.ProjectID,
		Name:            row.Name,
		Goal:            row.Goal,
		Status:          model.SprintStatus(row.Status),
		StartDate:       fromNullableDate(row.StartDate),
		EndDate:         fromNullableDate(row.EndDate),
		CommittedPoints: row.CommittedPoints,
		CompletedPoints: row.CompletedPoints,
		CreatedBy:       row.CreatedBy,
		CreatedAt:       fromTimestamptz(row.CreatedAt),
		UpdatedAt:       fromTimestamptz(row.UpdatedAt),
		CompletedAt:     fromNullableTimestamptz(row.CompletedAt),
	}
}

func toSprintModels(rows []sqlc.Sprint) []model.Sprint {
	sprints := make([]model.Sprint, 0, len(rows))
	for _, row := range rows {
		sprints = append(sprints, *toSprintModel(row))
	}
	return sprints
}
