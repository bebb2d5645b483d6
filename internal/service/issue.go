package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/queue"
	"ficct.app/scrum/internal/store"
)

type CreateIssueInput struct {
	ProjectID      int64
	IssueTypeID    int64
	Title          string
	Description    string
	Priority       model.Priority
	SprintID       *int64
	ParentID       *int64
	AssigneeID     *int64
	ReporterID     int64
	StoryPoints    *int32
	EstimatedHours *float64
}

// UpdateIssueInput carries partial updates. Nil fields are left as-is.
type UpdateIssueInput struct {
	Title          *string
	Description    *string
	Priority       *model.Priority
	IssueTypeID    *int64
	AssigneeID     *int64
	ClearAssignee  bool
	StoryPoints    *int32
	EstimatedHours *float64
	ActualHours    *float64
	IsBlocked      *bool
	Rank           *int32
}

type IssueService interface {
	Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error)
	Get(ctx context.Context, id int64) (*model.Issue, error)
	GetByKey(ctx context.Context, projectID, keyNumber int64) (*model.Issue, error)
	List(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error)
	Update(ctx context.Context, id int64, input UpdateIssueInput) (*model.Issue, error)
	// Transition moves the issue to another workflow status, validated
	// against the project's transition matrix. Re-entering the current
	// status is always allowed.
	Transition(ctx context.Context, id, toStatusID int64) (*model.Issue, error)
	AvailableTransitions(ctx context.Context, id int64) ([]model.WorkflowStatus, error)
	MoveToSprint(ctx context.Context, id int64, sprintID *int64) (*model.Issue, error)
	Delete(ctx context.Context, id int64) error
	AddComment(ctx context.Context, issueID, authorID int64, body string) (*model.IssueComment, error)
	ListComments(ctx context.Context, issueID int64) ([]model.IssueComment, error)
	AddLink(ctx context.Context, sourceID, targetID int64, linkType model.LinkType, createdBy int64) (*model.IssueLink, error)
	ListLinks(ctx context.Context, issueID int64) ([]model.IssueLink, error)
}

type issueService struct {
	issueStore    store.IssueStore
	workflowStore store.WorkflowStore
	sprintStore   store.SprintStore
	txRunner      TxRunner
	producer      queue.Producer
	notifier      Notifier
}

func NewIssueService(issueStore store.IssueStore, workflowStore store.WorkflowStore, sprintStore store.SprintStore, txRunner TxRunner, producer queue.Producer, notifier Notifier) IssueService {
	return &issueService{
		issueStore:    issueStore,
		workflowStore: workflowStore,
		sprintStore:   sprintStore,
		txRunner:      txRunner,
		producer:      producer,
		notifier:      notifier,
	}
}

// Create allocates the issue key from the project's sequence and inserts
// the issue in one transaction, so concurrent creates never collide on
// key_number.
func (s *issueService) Create(ctx context.Context, input CreateIssueInput) (*model.Issue, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("issue title is required")
	}
	if input.Priority == "" {
		input.Priority = model.PriorityP3
	}
	if err := validatePriority(input.Priority); err != nil {
		return nil, err
	}

	issueType, err := s.workflowStore.GetIssueType(ctx, input.IssueTypeID)
	if err != nil {
		return nil, fmt.Errorf("loading issue type: %w", err)
	}
	if issueType.ProjectID != input.ProjectID {
		return nil, fmt.Errorf("issue type %d does not belong to project %d", input.IssueTypeID, input.ProjectID)
	}

	initial, err := s.workflowStore.GetInitialStatus(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading initial status: %w", err)
	}

	if input.SprintID != nil {
		if err := s.checkSprintAssignable(ctx, input.ProjectID, *input.SprintID); err != nil {
			return nil, err
		}
	}

	issue := &model.Issue{
		ID:             id.New(),
		ProjectID:      input.ProjectID,
		IssueTypeID:    input.IssueTypeID,
		StatusID:       initial.ID,
		SprintID:       input.SprintID,
		ParentID:       input.ParentID,
		Title:          input.Title,
		Description:    input.Description,
		Priority:       input.Priority,
		AssigneeID:     input.AssigneeID,
		ReporterID:     input.ReporterID,
		StoryPoints:    input.StoryPoints,
		EstimatedHours: input.EstimatedHours,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		keyNumber, err := stores.Projects().NextKeyNumber(ctx, input.ProjectID)
		if err != nil {
			return fmt.Errorf("allocating issue key: %w", err)
		}
		issue.KeyNumber = keyNumber
		if err := stores.Issues().Create(ctx, issue); err != nil {
			return fmt.Errorf("creating issue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueIndex(ctx, issue.ID)
	if issue.AssigneeID != nil && *issue.AssigneeID != issue.ReporterID {
		s.notifyAssigned(ctx, issue)
	}
	return issue, nil
}

func (s *issueService) Get(ctx context.Context, issueID int64) (*model.Issue, error) {
	return s.issueStore.GetByID(ctx, issueID)
}

func (s *issueService) GetByKey(ctx context.Context, projectID, keyNumber int64) (*model.Issue, error) {
	return s.issueStore.GetByKey(ctx, projectID, keyNumber)
}

func (s *issueService) List(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error) {
	if filter.Priority != nil {
		if err := validatePriority(*filter.Priority); err != nil {
			return nil, err
		}
	}
	return s.issueStore.List(ctx, projectID, filter)
}

func (s *issueService) Update(ctx context.Context, issueID int64, input UpdateIssueInput) (*model.Issue, error) {
	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	prevAssignee := issue.AssigneeID
	semanticChange := false

	if input.Title != nil && *input.Title != "" && *input.Title != issue.Title {
		issue.Title = *input.Title
		semanticChange = true
	}
	if input.Description != nil && *input.Description != issue.Description {
		issue.Description = *input.Description
		semanticChange = true
	}
	if input.Priority != nil && *input.Priority != issue.Priority {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		issue.Priority = *input.Priority
		semanticChange = true
	}
	if input.IssueTypeID != nil && *input.IssueTypeID != issue.IssueTypeID {
		issueType, err := s.workflowStore.GetIssueType(ctx, *input.IssueTypeID)
		if err != nil {
			return nil, fmt.Errorf("loading issue type: %w", err)
		}
		if issueType.ProjectID != issue.ProjectID {
			return nil, fmt.Errorf("issue type %d does not belong to project %d", *input.IssueTypeID, issue.ProjectID)
		}
		issue.IssueTypeID = *input.IssueTypeID
		semanticChange = true
	}
	if input.ClearAssignee {
		if issue.AssigneeID != nil {
			semanticChange = true
		}
		issue.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if issue.AssigneeID == nil || *issue.AssigneeID != *input.AssigneeID {
			semanticChange = true
		}
		issue.AssigneeID = input.AssigneeID
	}
	if input.StoryPoints != nil {
		issue.StoryPoints = input.StoryPoints
	}
	if input.EstimatedHours != nil {
		issue.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		issue.ActualHours = input.ActualHours
	}
	if input.IsBlocked != nil {
		issue.IsBlocked = *input.IsBlocked
	}
	if input.Rank != nil {
		issue.Rank = *input.Rank
	}

	if err := s.issueStore.Update(ctx, issue); err != nil {
		return nil, fmt.Errorf("updating issue: %w", err)
	}

	if semanticChange {
		s.enqueueIndex(ctx, issue.ID)
	}
	if issue.AssigneeID != nil && (prevAssignee == nil || *prevAssignee != *issue.AssigneeID) {
		s.notifyAssigned(ctx, issue)
	}
	return issue, nil
}

func (s *issueService) Transition(ctx context.Context, issueID, toStatusID int64) (*model.Issue, error) {
	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if toStatusID == issue.StatusID {
		return issue, nil
	}

	target, err := s.workflowStore.GetStatus(ctx, toStatusID)
	if err != nil {
		return nil, fmt.Errorf("loading target status: %w", err)
	}
	if target.ProjectID != issue.ProjectID {
		return nil, fmt.Errorf("status %d does not belong to project %d", toStatusID, issue.ProjectID)
	}

	allowed, err := s.workflowStore.TransitionExists(ctx, issue.ProjectID, issue.StatusID, toStatusID)
	if err != nil {
		return nil, fmt.Errorf("checking transition: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("transition from status %d to %d is not allowed", issue.StatusID, toStatusID)
	}

	var resolvedAt *time.Time
	if target.IsFinal {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	updated, err := s.issueStore.UpdateStatus(ctx, issueID, toStatusID, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("applying transition: %w", err)
	}

	s.enqueueIndex(ctx, issueID)
	if updated.AssigneeID != nil {
		s.notify(ctx, *updated.AssigneeID, model.NotificationStatusChanged,
			"Issue status changed",
			fmt.Sprintf("%q moved to %s", updated.Title, target.Name),
			map[string]any{"issue_id": updated.ID, "project_id": updated.ProjectID, "status_id": target.ID})
	}
	return updated, nil
}

func (s *issueService) AvailableTransitions(ctx context.Context, issueID int64) ([]model.WorkflowStatus, error) {
	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	return s.workflowStore.ListTransitionsFrom(ctx, issue.ProjectID, issue.StatusID)
}

func (s *issueService) MoveToSprint(ctx context.Context, issueID int64, sprintID *int64) (*model.Issue, error) {
	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if sprintID != nil {
		if err := s.checkSprintAssignable(ctx, issue.ProjectID, *sprintID); err != nil {
			return nil, err
		}
	}

	updated, err := s.issueStore.MoveToSprint(ctx, issueID, sprintID)
	if err != nil {
		return nil, fmt.Errorf("moving issue to sprint: %w", err)
	}

	s.enqueueIndex(ctx, issueID)
	return updated, nil
}

func (s *issueService) Delete(ctx context.Context, issueID int64) error {
	if err := s.issueStore.Delete(ctx, issueID); err != nil {
		return err
	}
	s.enqueue(ctx, queue.Task{TaskType: queue.TaskTypeRemoveIssue, IssueID: &issueID})
	s.enqueue(ctx, queue.Task{TaskType: queue.TaskTypeInvalidateSummary, EntityType: "issue", EntityID: &issueID})
	return nil
}

func (s *issueService) AddComment(ctx context.Context, issueID, authorID int64, body string) (*model.IssueComment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}
	issue, err := s.issueStore.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	comment := &model.IssueComment{
		ID:       id.New(),
		IssueID:  issueID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.issueStore.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	// A new comment stales any cached discussion summary.
	s.enqueue(ctx, queue.Task{TaskType: queue.TaskTypeInvalidateSummary, EntityType: "issue", EntityID: &issueID})

	recipients := map[int64]bool{issue.ReporterID: true}
	if issue.AssigneeID != nil {
		recipients[*issue.AssigneeID] = true
	}
	delete(recipients, authorID)
	for recipient := range recipients {
		s.notify(ctx, recipient, model.NotificationIssueCommented,
			"New comment",
			fmt.Sprintf("New comment on %q", issue.Title),
			map[string]any{"issue_id": issue.ID, "project_id": issue.ProjectID, "comment_id": comment.ID})
	}
	return comment, nil
}

func (s *issueService) ListComments(ctx context.Context, issueID int64) ([]model.IssueComment, error) {
	return s.issueStore.ListComments(ctx, issueID)
}

func (s *issueService) AddLink(ctx context.Context, sourceID, targetID int64, linkType model.LinkType, createdBy int64) (*model.IssueLink, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("an issue cannot link to itself")
	}
	switch linkType {
	case model.LinkTypeBlocks, model.LinkTypeDuplicates, model.LinkTypeRelatesTo:
	default:
		return nil, fmt.Errorf("invalid link type %q", linkType)
	}

	if _, err := s.issueStore.GetByID(ctx, sourceID); err != nil {
		return nil, fmt.Errorf("loading source issue: %w", err)
	}
	if _, err := s.issueStore.GetByID(ctx, targetID); err != nil {
		return nil, fmt.Errorf("loading target issue: %w", err)
	}

	existing, err := s.issueStore.ListLinks(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("checking existing links: %w", err)
	}
	for _, l := range existing {
		samePair := (l.SourceIssueID == sourceID && l.TargetIssueID == targetID) ||
			(l.SourceIssueID == targetID && l.TargetIssueID == sourceID)
		if samePair && l.LinkType == linkType {
			return nil, fmt.Errorf("link already exists between issues %d and %d", sourceID, targetID)
		}
	}

	link := &model.IssueLink{
		ID:            id.New(),
		SourceIssueID: sourceID,
		TargetIssueID: targetID,
		LinkType:      linkType,
		CreatedBy:     createdBy,
	}
	if err := s.issueStore.CreateLink(ctx, link); err != nil {
		return nil, fmt.Errorf("creating link: %w", err)
	}
	return link, nil
}

func (s *issueService) ListLinks(ctx context.Context, issueID int64) ([]model.IssueLink, error) {
	return s.issueStore.ListLinks(ctx, issueID)
}

func validatePriority(p model.Priority) error {
	switch p {
	case model.PriorityP1, model.PriorityP2, model.PriorityP3, model.PriorityP4:
		return nil
	default:
		return fmt.Errorf("invalid priority %q", p)
	}
}

func (s *issueService) checkSprintAssignable(ctx context.Context, projectID, sprintID int64) error {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return fmt.Errorf("loading sprint: %w", err)
	}
	if sprint.ProjectID != projectID {
		return fmt.Errorf("sprint %d does not belong to project %d", sprintID, projectID)
	}
	if sprint.Status == model.SprintStatusCompleted || sprint.Status == model.SprintStatusCancelled {
		return fmt.Errorf("sprint %d is %s", sprintID, sprint.Status)
	}
	return nil
}

func (s *issueService) enqueueIndex(ctx context.Context, issueID int64) {
	s.enqueue(ctx, queue.Task{TaskType: queue.TaskTypeIndexIssue, IssueID: &issueID})
}

func (s *issueService) notifyAssigned(ctx context.Context, issue *model.Issue) {
	if issue.AssigneeID == nil {
		return
	}
	s.notify(ctx, *issue.AssigneeID, model.NotificationIssueAssigned,
		"Issue assigned to you",
		fmt.Sprintf("You were assigned %q", issue.Title),
		map[string]any{"issue_id": issue.ID, "project_id": issue.ProjectID})
}

func (s *issueService) notify(ctx context.Context, recipientID int64, t model.NotificationType, title, message string, data map[string]any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, recipientID, t, title, message, data)
}

// enqueue is best effort. Indexing and cache invalidation are side
// effects and must not fail the write that triggered them.
func (s *issueService) enqueue(ctx context.Context, task queue.Task) {
	if s.producer == nil {
		return
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID := sc.TraceID().String()
		task.TraceID = &traceID
	}
	if err := s.producer.Enqueue(ctx, task); err != nil {
		slog.WarnContext(ctx, "failed to enqueue task",
			"task_type", task.TaskType,
			"issue_id", task.IssueID,
			"error", err)
	}
}
