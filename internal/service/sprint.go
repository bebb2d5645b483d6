package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// VelocityEntry is one completed sprint's outcome.
type VelocityEntry struct {
	SprintID        int64      `json:"sprint_id"`
	Name            string     `json:"name"`
	CommittedPoints int32      `json:"committed_points"`
	CompletedPoints int32      `json:"completed_points"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// BurndownPoint is one day of a sprint burndown series.
type BurndownPoint struct {
	Date            time.Time `json:"date"`
	RemainingPoints int64     `json:"remaining_points"`
	IdealPoints     float64   `json:"ideal_points"`
}

type SprintService interface {
	Create(ctx context.Context, projectID int64, name, goal string, startDate, endDate *time.Time, createdBy int64) (*model.Sprint, error)
	Get(ctx context.Context, id int64) (*model.Sprint, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Sprint, error)
	Update(ctx context.Context, id int64, name, goal *string, startDate, endDate *time.Time) (*model.Sprint, error)
	// Start activates a planning sprint. Dates must be set by now, and
	// only one sprint per project may be active. Committed points are
	// snapshotted from the sprint's current issues.
	Start(ctx context.Context, id int64) (*model.Sprint, error)
	// Complete finishes an active sprint, stamping completed points and
	// moving unresolved issues to moveToSprintID, or back to the backlog
	// when nil.
	Complete(ctx context.Context, id int64, moveToSprintID *int64) (*model.Sprint, error)
	Cancel(ctx context.Context, id int64) (*model.Sprint, error)
	Progress(ctx context.Context, id int64) (*model.SprintProgress, error)
	Velocity(ctx context.Context, projectID int64, limit int32) ([]VelocityEntry, error)
	Burndown(ctx context.Context, id int64) ([]BurndownPoint, error)
}

type sprintService struct {
	sprintStore   store.SprintStore
	issueStore    store.IssueStore
	workflowStore store.WorkflowStore
	projectStore  store.ProjectStore
	txRunner      TxRunner
	notifier      Notifier
}

func NewSprintService(sprintStore store.SprintStore, issueStore store.IssueStore, workflowStore store.WorkflowStore, projectStore store.ProjectStore, txRunner TxRunner, notifier Notifier) SprintService {
	return &sprintService{
		sprintStore:   sprintStore,
		issueStore:    issueStore,
		workflowStore: workflowStore,
		projectStore:  projectStore,
		txRunner:      txRunner,
		notifier:      notifier,
	}
}

func (s *sprintService) Create(ctx context.Context, projectID int64, name, goal string, startDate, endDate *time.Time, createdBy int64) (*model.Sprint, error) {
	if name == "" {
		return nil, fmt.Errorf("sprint name is required")
	}
	if err := validateSprintDates(startDate, endDate); err != nil {
		return nil, err
	}

	sprint := &model.Sprint{
		ID:        id.New(),
		ProjectID: projectID,
		Name:      name,
		Goal:      goal,
		Status:    model.SprintStatusPlanning,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedBy: createdBy,
	}
	if err := s.sprintStore.Create(ctx, sprint); err != nil {
		return nil, fmt.Errorf("creating sprint: %w", err)
	}
	return sprint, nil
}

func (s *sprintService) Get(ctx context.Context, sprintID int64) (*model.Sprint, error) {
	return s.sprintStore.GetByID(ctx, sprintID)
}

func (s *sprintService) ListByProject(ctx context.Context, projectID int64) ([]model.Sprint, error) {
	return s.sprintStore.ListByProject(ctx, projectID)
}

func (s *sprintService) Update(ctx context.Context, sprintID int64, name, goal *string, startDate, endDate *time.Time) (*model.Sprint, error) {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.Status == model.SprintStatusCompleted || sprint.Status == model.SprintStatusCancelled {
		return nil, fmt.Errorf("sprint %d is %s and cannot be updated", sprintID, sprint.Status)
	}
	if name != nil && *name != "" {
		sprint.Name = *name
	}
	if goal != nil {
		sprint.Goal = *goal
	}
	if startDate != nil {
		sprint.StartDate = startDate
	}
	if endDate != nil {
		sprint.EndDate = endDate
	}
	if err := validateSprintDates(sprint.StartDate, sprint.EndDate); err != nil {
		return nil, err
	}
	if err := s.sprintStore.Update(ctx, sprint); err != nil {
		return nil, fmt.Errorf("updating sprint: %w", err)
	}
	return sprint, nil
}

func (s *sprintService) Start(ctx context.Context, sprintID int64) (*model.Sprint, error) {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.Status != model.SprintStatusPlanning {
		return nil, fmt.Errorf("sprint %d is %s, only planning sprints can start", sprintID, sprint.Status)
	}
	if sprint.StartDate == nil || sprint.EndDate == nil {
		return nil, fmt.Errorf("sprint %d needs start and end dates before starting", sprintID)
	}

	if active, err := s.sprintStore.GetActive(ctx, sprint.ProjectID); err == nil {
		return nil, fmt.Errorf("project %d already has active sprint %d", sprint.ProjectID, active.ID)
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("checking active sprint: %w", err)
	}

	progress, err := s.issueStore.SprintProgress(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("computing committed points: %w", err)
	}

	started, err := s.sprintStore.Start(ctx, sprintID, *sprint.StartDate, *sprint.EndDate, int32(progress.TotalPoints))
	if err != nil {
		return nil, fmt.Errorf("starting sprint: %w", err)
	}
	s.notifyMembers(ctx, started, model.NotificationSprintStarted,
		"Sprint started", fmt.Sprintf("Sprint %q has started", started.Name))
	return started, nil
}

func (s *sprintService) Complete(ctx context.Context, sprintID int64, moveToSprintID *int64) (*model.Sprint, error) {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.Status != model.SprintStatusActive {
		return nil, fmt.Errorf("sprint %d is %s, only active sprints can complete", sprintID, sprint.Status)
	}
	if moveToSprintID != nil {
		target, err := s.sprintStore.GetByID(ctx, *moveToSprintID)
		if err != nil {
			return nil, fmt.Errorf("loading target sprint: %w", err)
		}
		if target.ProjectID != sprint.ProjectID {
			return nil, fmt.Errorf("target sprint %d belongs to another project", *moveToSprintID)
		}
		if target.Status == model.SprintStatusCompleted || target.Status == model.SprintStatusCancelled {
			return nil, fmt.Errorf("target sprint %d is %s", *moveToSprintID, target.Status)
		}
	}

	finalStatuses, err := s.finalStatusIDs(ctx, sprint.ProjectID)
	if err != nil {
		return nil, err
	}

	var completed *model.Sprint
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		progress, err := stores.Issues().SprintProgress(ctx, sprintID)
		if err != nil {
			return fmt.Errorf("computing completed points: %w", err)
		}

		issues, err := stores.Issues().ListBySprint(ctx, sprintID)
		if err != nil {
			return fmt.Errorf("listing sprint issues: %w", err)
		}
		for _, issue := range issues {
			if finalStatuses[issue.StatusID] {
				continue
			}
			if _, err := stores.Issues().MoveToSprint(ctx, issue.ID, moveToSprintID); err != nil {
				return fmt.Errorf("moving unresolved issue %d: %w", issue.ID, err)
			}
		}

		completed, err = stores.Sprints().Complete(ctx, sprintID, int32(progress.CompletedPoints))
		if err != nil {
			return fmt.Errorf("completing sprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyMembers(ctx, completed, model.NotificationSprintCompleted,
		"Sprint completed", fmt.Sprintf("Sprint %q has been completed", completed.Name))
	return completed, nil
}

func (s *sprintService) Cancel(ctx context.Context, sprintID int64) (*model.Sprint, error) {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.Status == model.SprintStatusCompleted || sprint.Status == model.SprintStatusCancelled {
		return nil, fmt.Errorf("sprint %d is already %s", sprintID, sprint.Status)
	}
	sprint.Status = model.SprintStatusCancelled
	if err := s.sprintStore.Update(ctx, sprint); err != nil {
		return nil, fmt.Errorf("cancelling sprint: %w", err)
	}
	return sprint, nil
}

func (s *sprintService) Progress(ctx context.Context, sprintID int64) (*model.SprintProgress, error) {
	if _, err := s.sprintStore.GetByID(ctx, sprintID); err != nil {
		return nil, err
	}
	return s.issueStore.SprintProgress(ctx, sprintID)
}

func (s *sprintService) Velocity(ctx context.Context, projectID int64, limit int32) ([]VelocityEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	sprints, err := s.sprintStore.ListCompleted(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]VelocityEntry, 0, len(sprints))
	for _, sp := range sprints {
		entries = append(entries, VelocityEntry{
			SprintID:        sp.ID,
			Name:            sp.Name,
			CommittedPoints: sp.CommittedPoints,
			CompletedPoints: sp.CompletedPoints,
			CompletedAt:     sp.CompletedAt,
		})
	}
	return entries, nil
}

// Burndown walks the sprint day by day, subtracting points of issues
// resolved on or before each day. Unestimated issues contribute zero.
func (s *sprintService) Burndown(ctx context.Context, sprintID int64) ([]BurndownPoint, error) {
	sprint, err := s.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}
	if sprint.StartDate == nil || sprint.EndDate == nil {
		return nil, fmt.Errorf("sprint %d has no dates", sprintID)
	}

	issues, err := s.issueStore.ListBySprint(ctx, sprintID)
	if err != nil {
		return nil, err
	}

	var totalPoints int64
	for _, issue := range issues {
		if issue.StoryPoints != nil {
			totalPoints += int64(*issue.StoryPoints)
		}
	}

	start := sprint.StartDate.Truncate(24 * time.Hour)
	end := sprint.EndDate.Truncate(24 * time.Hour)
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	series := make([]BurndownPoint, 0, days)
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		dayEnd := day.AddDate(0, 0, 1)

		var resolvedPoints int64
		for _, issue := range issues {
			if issue.ResolvedAt != nil && issue.ResolvedAt.Before(dayEnd) && issue.StoryPoints != nil {
				resolvedPoints += int64(*issue.StoryPoints)
			}
		}

		ideal := float64(totalPoints)
		if days > 1 {
			ideal = float64(totalPoints) * float64(days-1-d) / float64(days-1)
		}

		series = append(series, BurndownPoint{
			Date:            day,
			RemainingPoints: totalPoints - resolvedPoints,
			IdealPoints:     ideal,
		})
	}
	return series, nil
}

func (s *sprintService) finalStatusIDs(ctx context.Context, projectID int64) (map[int64]bool, error) {
	statuses, err := s.workflowStore.ListStatuses(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	final := make(map[int64]bool, len(statuses))
	for _, st := range statuses {
		if st.IsFinal {
			final[st.ID] = true
		}
	}
	return final, nil
}

// notifyMembers fans a sprint lifecycle event out to every active
// project member. Best effort, like the queue side effects.
func (s *sprintService) notifyMembers(ctx context.Context, sprint *model.Sprint, t model.NotificationType, title, message string) {
	if s.notifier == nil || s.projectStore == nil {
		return
	}
	members, err := s.projectStore.ListMembers(ctx, sprint.ProjectID)
	if err != nil {
		slog.WarnContext(ctx, "listing members for sprint notification failed",
			"project_id", sprint.ProjectID,
			"error", err)
		return
	}
	data := map[string]any{"sprint_id": sprint.ID, "project_id": sprint.ProjectID}
	for _, m := range members {
		if !m.IsActive {
			continue
		}
		s.notifier.Notify(ctx, m.UserID, t, title, message, data)
	}
}

func validateSprintDates(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return fmt.Errorf("sprint end date must be after start date")
	}
	return nil
}
