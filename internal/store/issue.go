package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ficct.app/scrum/core/db/sqlc"
	"ficct.app/scrum/internal/model"
)

type issueStore struct {
	queries *sqlc.Queries
}

func newIssueStore(queries *sqlc.Queries) IssueStore {
	return &issueStore{queries: queries}
}

func (s *issueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	row, err := s.queries.GetIssue(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueModel(row), nil
}

func (s *issueStore) GetByKey(ctx context.Context, projectID, keyNumber int64) (*model.Issue, error) {
	row, err := s.queries.GetIssueByKey(ctx, sqlc.GetIssueByKeyParams{
		ProjectID: projectID,
		KeyNumber: keyNumber,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueModel(row), nil
}

func (s *issueStore) Create(ctx context.Context, issue *model.Issue) error {
	row, err := s.queries.CreateIssue(ctx, sqlc.CreateIssueParams{
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
	})
	if err != nil {
		return err
	}
	*issue = *toIssueModel(row)
	return nil
}

func (s *issueStore) Update(ctx context.Context, issue *model.Issue) error {
	row, err := s.queries.UpdateIssue(ctx, sqlc.UpdateIssueParams{
		ID:             issue.ID,
		Title:          issue.Title,
		Description:    issue.Description,
		Priority:       string(issue.Priority),
		AssigneeID:     issue.AssigneeID,
		StoryPoints:    issue.StoryPoints,
		EstimatedHours: issue.EstimatedHours,
		ActualHours:    issue.ActualHours,
		IsBlocked:      issue.IsBlocked,
		IssueTypeID:    issue.IssueTypeID,
		Rank:           issue.Rank,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*issue = *toIssueModel(row)
	return nil
}

func (s *issueStore) UpdateStatus(ctx context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error) {
	row, err := s.queries.UpdateIssueStatus(ctx, sqlc.UpdateIssueStatusParams{
		ID:         id,
		StatusID:   statusID,
		ResolvedAt: toNullableTimestamptz(resolvedAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueModel(row), nil
}

func (s *issueStore) MoveToSprint(ctx context.Context, id int64, sprintID *int64) (*model.Issue, error) {
	row, err := s.queries.MoveIssueToSprint(ctx, sqlc.MoveIssueToSprintParams{
		ID:       id,
		SprintID: sprintID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIssueModel(row), nil
}

func (s *issueStore) Delete(ctx context.Context, id int64) error {
	return s.queries.SoftDeleteIssue(ctx, id)
}

func (s *issueStore) List(ctx context.Context, projectID int64, filter IssueFilter) ([]model.Issue, error) {
	var priority *string
	if filter.Priority != nil {
		p := string(*filter.Priority)
		priority = &p
	}
	rows, err := s.queries.ListIssues(ctx, sqlc.ListIssuesParams{
		ProjectID:  projectID,
		SprintID:   filter.SprintID,
		StatusID:   filter.StatusID,
		AssigneeID: filter.AssigneeID,
		Priority:   priority,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) ListBySprint(ctx context.Context, sprintID int64) ([]model.Issue, error) {
	rows, err := s.queries.ListIssuesBySprint(ctx, &sprintID)
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) ListByProject(ctx context.Context, projectID int64) ([]model.Issue, error) {
	rows, err := s.queries.ListIssuesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) ListByIDs(ctx context.Context, ids []int64) ([]model.Issue, error) {
	rows, err := s.queries.ListIssuesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) SprintProgress(ctx context.Context, sprintID int64) (*model.SprintProgress, error) {
	row, err := s.queries.GetSprintProgress(ctx, &sprintID)
	if err != nil {
		return nil, err
	}
	return &model.SprintProgress{
		TotalIssues:       row.TotalIssues,
		CompletedIssues:   row.CompletedIssues,
		TotalPoints:       row.TotalPoints,
		CompletedPoints:   row.CompletedPoints,
		BlockedIssues:     row.BlockedIssues,
		UnestimatedIssues: row.UnestimatedIssues,
	}, nil
}

func (s *issueStore) CountAddedAfter(ctx context.Context, sprintID int64, after time.Time) (int64, error) {
	return s.queries.CountIssuesAddedAfter(ctx, sqlc.CountIssuesAddedAfterParams{
		SprintID:  &sprintID,
		CreatedAt: toTimestamptz(after),
	})
}

func (s *issueStore) AssigneeLoad(ctx context.Context, sprintID int64) (map[int64]int64, error) {
	rows, err := s.queries.ListAssigneeLoadBySprint(ctx, &sprintID)
	if err != nil {
		return nil, err
	}
	load := make(map[int64]int64, len(rows))
	for _, row := range rows {
		if row.AssigneeID != nil {
			load[*row.AssigneeID] = row.OpenIssues
		}
	}
	return load, nil
}

func (s *issueStore) ListStale(ctx context.Context, projectID int64, cutoff time.Time) ([]model.Issue, error) {
	rows, err := s.queries.ListStaleIssues(ctx, sqlc.ListStaleIssuesParams{
		ProjectID: projectID,
		UpdatedAt: toTimestamptz(cutoff),
	})
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) ListResolvedByType(ctx context.Context, projectID, issueTypeID int64, limit int32) ([]model.Issue, error) {
	rows, err := s.queries.ListResolvedIssuesByType(ctx, sqlc.ListResolvedIssuesByTypeParams{
		ProjectID:   projectID,
		IssueTypeID: issueTypeID,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return toIssueModels(rows), nil
}

func (s *issueStore) CountOpenByAssignee(ctx context.Context, projectID, assigneeID int64) (int64, error) {
	return s.queries.CountOpenIssuesByAssignee(ctx, sqlc.CountOpenIssuesByAssigneeParams{
		ProjectID:  projectID,
		AssigneeID: &assigneeID,
	})
}

func (s *issueStore) CreateComment(ctx context.Context, c *model.IssueComment) error {
	row, err := s.queries.CreateIssueComment(ctx, sqlc.CreateIssueCommentParams{
		ID:       c.ID,
		IssueID:  c.IssueID,
		AuthorID: c.AuthorID,
		Body:     c.Body,
	})
	if err != nil {
		return err
	}
	*c = model.IssueComment{
		ID:        row.ID,
		IssueID:   row.IssueID,
		AuthorID:  row.AuthorID,
		Body:      row.Body,
		CreatedAt: fromTimestamptz(row.CreatedAt),
		UpdatedAt: fromTimestamptz(row.UpdatedAt),
	}
	return nil
}

func (s *issueStore) ListComments(ctx context.Context, issueID int64) ([]model.IssueComment, error) {
	rows, err := s.queries.ListIssueComments(ctx, issueID)
	if err != nil {
		return nil, err
	}
	comments := make([]model.IssueComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, model.IssueComment{
			ID:        row.ID,
			IssueID:   row.IssueID,
			AuthorID:  row.AuthorID,
			Body:      row.Body,
			CreatedAt: fromTimestamptz(row.CreatedAt),
			UpdatedAt: fromTimestamptz(row.UpdatedAt),
		})
	}
	return comments, nil
}

func (s *issueStore) CreateLink(ctx context.Context, l *model.IssueLink) error {
	row, err := s.queries.CreateIssueLink(ctx, sqlc.CreateIssueLinkParams{
		ID:            l.ID,
		SourceIssueID: l.SourceIssueID,
		TargetIssueID: l.TargetIssueID,
		LinkType:      string(l.LinkType),
		CreatedBy:     l.CreatedBy,
	})
	if err != nil {
		return err
	}
	*l = model.IssueLink{
		ID:            row.ID,
		SourceIssueID: row.SourceIssueID,
		TargetIssueID: row.TargetIssueID,
		LinkType:      model.LinkType(row.LinkType),
		CreatedBy:     row.CreatedBy,
		CreatedAt:     fromTimestamptz(row.CreatedAt),
	}
	return nil
}

func (s *issueStore) ListLinks(ctx context.Context, issueID int64) ([]model.IssueLink, error) {
	rows, err := s.queries.ListIssueLinks(ctx, issueID)
	if err != nil {
		return nil, err
	}
	links := make([]model.IssueLink, 0, len(rows))
	for _, row := range rows {
		links = append(links, model.IssueLink{
			ID:            row.ID,
			SourceIssueID: row.SourceIssueID,
			TargetIssueID: row.TargetIssueID,
			LinkType:      model.LinkType(row.LinkType),
			CreatedBy:     row.CreatedBy,
			CreatedAt:     fromTimestamptz(row.CreatedAt),
		})
	}
	return links, nil
}

func toIssueModel(row sqlc.Issue) *model.Issue {
	return &model.Issue{
		ID:             row.ID,
		ProjectID:      row.ProjectID,
		IssueTypeID:    row.IssueTypeID,
		StatusID:       row.StatusID,
		SprintID:       row.SprintID,
		ParentID:       row.ParentID,
		KeyNumber:      row.KeyNumber,
		Title:          row.Title,
		Description:    row.Description,
		Priority:       model.Priority(row.Priority),
		AssigneeID:     row.AssigneeID,
		ReporterID:     row.ReporterID,
		StoryPoints:    row.StoryPoints,
		EstimatedHours: row.EstimatedHours,
		ActualHours:    row.ActualHours,
		IsBlocked:      row.IsBlocked,
		Rank:           row.Rank,
		CreatedAt:      fromTimestamptz(row.CreatedAt),
		UpdatedAt:      fromTimestamptz(row.UpdatedAt),
		ResolvedAt:     fromNullableTimestamptz(row.ResolvedAt),
		IsDeleted:      row.IsDeleted,
	}
}

func toIssueModels(rows []sqlc.Issue) []model.Issue {
	issues := make([]model.Issue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, *toIssueModel(row))
	}
	return issues
}
