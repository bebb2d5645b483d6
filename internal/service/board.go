package service

import (
	"context"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// BoardColumn is one workflow status with its issues in rank order.
type BoardColumn struct {
	Status model.WorkflowStatus `json:"status"`
	Issues []model.Issue        `json:"issues"`
}

type BoardService interface {
	// Board returns the project's issues grouped per workflow status in
	// status position order. When sprintID is set only that sprint's
	// issues appear, otherwise the whole backlog does.
	Board(ctx context.Context, projectID int64, sprintID *int64) ([]BoardColumn, error)
}

type boardService struct {
	issueStore    store.IssueStore
	workflowStore store.WorkflowStore
}

func NewBoardService(issueStore store.IssueStore, workflowStore store.WorkflowStore) BoardService {
	return &boardService{issueStore: issueStore, workflowStore: workflowStore}
}

func (s *boardService) Board(ctx context.Context, projectID int64, sprintID *int64) ([]BoardColumn, error) {
	statuses, err := s.workflowStore.ListStatuses(ctx, projectID)
	if err != nil {
		return nil, err
	}

	issues, err := s.issueStore.List(ctx, projectID, store.IssueFilter{SprintID: sprintID})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[int64][]model.Issue, len(statuses))
	for _, issue := range issues {
		byStatus[issue.StatusID] = append(byStatus[issue.StatusID], issue)
	}

	columns := make([]BoardColumn, 0, len(statuses))
	for _, status := range statuses {
		column := BoardColumn{Status: status, Issues: byStatus[status.ID]}
		if column.Issues == nil {
			column.Issues = []model.Issue{}
		}
		columns = append(columns, column)
	}
	return columns, nil
}
