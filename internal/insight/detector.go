package insight

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/common/logger"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

const (
	burndownBehindMedium = 0.20
	burndownBehindHigh   = 0.30
	blockedRatioMedium   = 0.30
	blockedRatioHigh     = 0.50
	scopeCreepMedium     = 0.25
	scopeCreepHigh       = 0.50
	capacityMedium       = 10
	capacityHigh         = 15
	velocityZMedium      = -1.5
	velocityZHigh        = -2.0
	velocityMinSprints   = 3
	staleAfterDays       = 30
	staleCountHigh       = 10
	creationSpikeMedium  = 2.5
	creationSpikeHigh    = 4.0
	bottleneckDaysMedium = 14.0
	bottleneckDaysHigh   = 30.0
	bottleneckMinIssues  = 3
)

// Detector finds sprint risks and project-level anomalies with plain
// rule-based checks over the relational data.
type Detector interface {
	// AnalyzeSprint evaluates an active sprint's risks without
	// persisting anything.
	AnalyzeSprint(ctx context.Context, sprintID int64) ([]model.Anomaly, error)
	// ScanProject runs every check for a project, persists high
	// severity findings and resolves ones that no longer hold.
	ScanProject(ctx context.Context, projectID int64) ([]model.Anomaly, error)
	ListOpen(ctx context.Context, projectID int64) ([]model.Anomaly, error)
	Resolve(ctx context.Context, anomalyID int64) error
}

type detector struct {
	issueStore        store.IssueStore
	sprintStore       store.SprintStore
	workflowStore     store.WorkflowStore
	anomalyStore      store.AnomalyStore
	projectStore      store.ProjectStore
	notificationStore store.NotificationStore
	now               func() time.Time
}

func NewDetector(stores *store.Stores) Detector {
	return &detector{
		issueStore:        stores.Issues(),
		sprintStore:       stores.Sprints(),
		workflowStore:     stores.Workflows(),
		anomalyStore:      stores.Anomalies(),
		projectStore:      stores.Projects(),
		notificationStore: stores.Notifications(),
		now:               time.Now,
	}
}

func (d *detector) AnalyzeSprint(ctx context.Context, sprintID int64) ([]model.Anomaly, error) {
	sprint, err := d.sprintStore.GetByID(ctx, sprintID)
	if err != nil {
		return nil, fmt.Errorf("loading sprint: %w", err)
	}
	return d.sprintRisks(ctx, sprint)
}

func (d *detector) sprintRisks(ctx context.Context, sprint *model.Sprint) ([]model.Anomaly, error) {
	progress, err := d.issueStore.SprintProgress(ctx, sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("loading sprint progress: %w", err)
	}

	var anomalies []model.Anomaly
	add := func(t model.AnomalyType, sev model.Severity, desc string, details map[string]any) {
		anomalies = append(anomalies, model.Anomaly{
			ID:          id.New(),
			ProjectID:   sprint.ProjectID,
			SprintID:    &sprint.ID,
			Type:        t,
			Severity:    sev,
			Description: desc,
			Details:     details,
			DetectedAt:  d.now().UTC(),
		})
	}

	if a := d.checkBurndown(sprint, progress); a != nil {
		add(a.t, a.sev, a.desc, a.details)
	}

	if progress.TotalIssues > 0 {
		ratio := float64(progress.BlockedIssues) / float64(progress.TotalIssues)
		if ratio > blockedRatioMedium {
			sev := model.SeverityMedium
			if ratio > blockedRatioHigh {
				sev = model.SeverityHigh
			}
			add(model.AnomalyBlockedRatio, sev,
				fmt.Sprintf("%d of %d sprint issues are blocked", progress.BlockedIssues, progress.TotalIssues),
				map[string]any{"blocked": progress.BlockedIssues, "total": progress.TotalIssues, "ratio": ratio})
		}
	}

	if progress.UnestimatedIssues > 0 {
		sev := model.SeverityMedium
		if progress.UnestimatedIssues > 3 {
			sev = model.SeverityHigh
		}
		add(model.AnomalyUnestimated, sev,
			fmt.Sprintf("%d sprint issues have no story points", progress.UnestimatedIssues),
			map[string]any{"unestimated": progress.UnestimatedIssues})
	}

	if sprint.Status == model.SprintStatusActive && sprint.StartDate != nil && progress.TotalIssues > 0 {
		added, err := d.issueStore.CountAddedAfter(ctx, sprint.ID, *sprint.StartDate)
		if err != nil {
			return nil, fmt.Errorf("counting added issues: %w", err)
		}
		ratio := float64(added) / float64(progress.TotalIssues)
		if ratio > scopeCreepMedium {
			sev := model.SeverityMedium
			if ratio > scopeCreepHigh {
				sev = model.SeverityHigh
			}
			add(model.AnomalyScopeCreep, sev,
				fmt.Sprintf("%d issues were added after the sprint started", added),
				map[string]any{"added": added, "total": progress.TotalIssues, "ratio": ratio})
		}
	}

	load, err := d.issueStore.AssigneeLoad(ctx, sprint.ID)
	if err != nil {
		return nil, fmt.Errorf("loading assignee load: %w", err)
	}
	var overloaded int64
	var maxLoad int64
	for _, count := range load {
		if count > capacityMedium {
			overloaded++
		}
		if count > maxLoad {
			maxLoad = count
		}
	}
	if overloaded > 0 {
		sev := model.SeverityMedium
		if maxLoad > capacityHigh {
			sev = model.SeverityHigh
		}
		add(model.AnomalyCapacityOverload, sev,
			fmt.Sprintf("%d assignees carry more than %d sprint issues", overloaded, capacityMedium),
			map[string]any{"overloaded_assignees": overloaded, "max_load": maxLoad})
	}

	return anomalies, nil
}

type finding struct {
	t       model.AnomalyType
	sev     model.Severity
	desc    string
	details map[string]any
}

func (d *detector) checkBurndown(sprint *model.Sprint, progress *model.SprintProgress) *finding {
	if sprint.Status != model.SprintStatusActive || sprint.StartDate == nil || sprint.EndDate == nil {
		return nil
	}
	totalPoints := progress.TotalPoints
	if totalPoints == 0 {
		return nil
	}

	now := d.now()
	total := sprint.EndDate.Sub(*sprint.StartDate)
	elapsed := now.Sub(*sprint.StartDate)
	if total <= 0 || elapsed <= 0 {
		return nil
	}
	expected := float64(elapsed) / float64(total)
	if expected > 1 {
		expected = 1
	}
	actual := float64(progress.CompletedPoints) / float64(totalPoints)
	behind := expected - actual
	if behind <= burndownBehindMedium {
		return nil
	}

	sev := model.SeverityMedium
	if behind > burndownBehindHigh {
		sev = model.SeverityHigh
	}
	return &finding{
		t:    model.AnomalyBurndownBehind,
		sev:  sev,
		desc: fmt.Sprintf("sprint is %.0f%% behind its expected burndown", behind*100),
		details: map[string]any{
			"expected_ratio":   expected,
			"completed_ratio":  actual,
			"behind_ratio":     behind,
			"total_points":     totalPoints,
			"completed_points": progress.CompletedPoints,
		},
	}
}

func (d *detector) ScanProject(ctx context.Context, projectID int64) ([]model.Anomaly, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ProjectID: logger.Ptr(projectID),
		Component: "scrum.insight.detector",
	})

	var anomalies []model.Anomaly

	if active, err := d.sprintStore.GetActive(ctx, projectID); err == nil {
		risks, err := d.sprintRisks(ctx, active)
		if err != nil {
			return nil, err
		}
		anomalies = append(anomalies, risks...)
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("loading active sprint: %w", err)
	}

	if a, err := d.checkVelocity(ctx, projectID); err != nil {
		return nil, err
	} else if a != nil {
		anomalies = append(anomalies, *a)
	}

	if a, err := d.checkStale(ctx, projectID); err != nil {
		return nil, err
	} else if a != nil {
		anomalies = append(anomalies, *a)
	}

	projectIssues, err := d.issueStore.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project issues: %w", err)
	}
	if a := d.checkCreationSpike(projectID, projectIssues); a != nil {
		anomalies = append(anomalies, *a)
	}
	bottlenecks, err := d.checkBottlenecks(ctx, projectID, projectIssues)
	if err != nil {
		return nil, err
	}
	anomalies = append(anomalies, bottlenecks...)

	if err := d.persist(ctx, projectID, anomalies); err != nil {
		return nil, err
	}
	return anomalies, nil
}

func (d *detector) checkVelocity(ctx context.Context, projectID int64) (*model.Anomaly, error) {
	sprints, err := d.sprintStore.ListCompleted(ctx, projectID, 5)
	if err != nil {
		return nil, fmt.Errorf("listing completed sprints: %w", err)
	}
	if len(sprints) < velocityMinSprints {
		return nil, nil
	}

	// Newest first: compare the latest sprint against the history.
	latest := float64(sprints[0].CompletedPoints)
	var sum, sumSq float64
	n := float64(len(sprints) - 1)
	for _, sp := range sprints[1:] {
		v := float64(sp.CompletedPoints)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance <= 0 {
		return nil, nil
	}
	z := (latest - mean) / math.Sqrt(variance)
	if z >= velocityZMedium {
		return nil, nil
	}

	sev := model.SeverityMedium
	if z < velocityZHigh {
		sev = model.SeverityHigh
	}
	return &model.Anomaly{
		ID:          id.New(),
		ProjectID:   projectID,
		Type:        model.AnomalyVelocityDrop,
		Severity:    sev,
		Description: fmt.Sprintf("latest sprint velocity %.0f is well below the %.1f average", latest, mean),
		Details: map[string]any{
			"latest_velocity": latest,
			"mean_velocity":   mean,
			"z_score":         z,
			"sprints":         len(sprints),
		},
		DetectedAt: d.now().UTC(),
	}, nil
}

func (d *detector) checkStale(ctx context.Context, projectID int64) (*model.Anomaly, error) {
	cutoff := d.now().AddDate(0, 0, -staleAfterDays)
	stale, err := d.issueStore.ListStale(ctx, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing stale issues: %w", err)
	}
	if len(stale) == 0 {
		return nil, nil
	}

	sev := model.SeverityMedium
	if len(stale) > staleCountHigh {
		sev = model.SeverityHigh
	}
	keys := make([]int64, 0, len(stale))
	for _, issue := range stale {
		keys = append(keys, issue.ID)
	}
	return &model.Anomaly{
		ID:          id.New(),
		ProjectID:   projectID,
		Type:        model.AnomalyStaleIssues,
		Severity:    sev,
		Description: fmt.Sprintf("%d open issues untouched for over %d days", len(stale), staleAfterDays),
		Details:     map[string]any{"count": len(stale), "issue_ids": keys, "days": staleAfterDays},
		DetectedAt:  d.now().UTC(),
	}, nil
}

// checkCreationSpike compares the last 7 days of issue creation against
// the trailing 8-week weekly average.
func (d *detector) checkCreationSpike(projectID int64, issues []model.Issue) *model.Anomaly {
	now := d.now()
	weekAgo := now.AddDate(0, 0, -7)
	historyStart := now.AddDate(0, 0, -7*9)

	var lastWeek, history int
	for _, issue := range issues {
		switch {
		case issue.CreatedAt.After(weekAgo):
			lastWeek++
		case issue.CreatedAt.After(historyStart):
			history++
		}
	}
	if history == 0 || lastWeek < 5 {
		return nil
	}
	weeklyAvg := float64(history) / 8
	if weeklyAvg == 0 {
		return nil
	}
	ratio := float64(lastWeek) / weeklyAvg
	if ratio <= creationSpikeMedium {
		return nil
	}

	sev := model.SeverityMedium
	if ratio > creationSpikeHigh {
		sev = model.SeverityHigh
	}
	return &model.Anomaly{
		ID:          id.New(),
		ProjectID:   projectID,
		Type:        model.AnomalyCreationSpike,
		Severity:    sev,
		Description: fmt.Sprintf("%d issues created in the last week, %.1fx the weekly average", lastWeek, ratio),
		Details:     map[string]any{"last_week": lastWeek, "weekly_average": weeklyAvg, "ratio": ratio},
		DetectedAt:  d.now().UTC(),
	}
}

// checkBottlenecks flags non-final statuses whose issues sit for too
// long, using the last update as the proxy for entering the status.
func (d *detector) checkBottlenecks(ctx context.Context, projectID int64, issues []model.Issue) ([]model.Anomaly, error) {
	statuses, err := d.workflowStore.ListStatuses(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}

	type bucket struct {
		name     string
		count    int
		sumDays  float64
		category model.StatusCategory
	}
	buckets := map[int64]*bucket{}
	for _, st := range statuses {
		if st.IsFinal {
			continue
		}
		buckets[st.ID] = &bucket{name: st.Name, category: st.Category}
	}

	now := d.now()
	for _, issue := range issues {
		b, ok := buckets[issue.StatusID]
		if !ok || issue.ResolvedAt != nil {
			continue
		}
		b.count++
		b.sumDays += now.Sub(issue.UpdatedAt).Hours() / 24
	}

	var anomalies []model.Anomaly
	for _, b := range buckets {
		if b.count < bottleneckMinIssues || b.category == model.StatusCategoryTodo {
			continue
		}
		meanDays := b.sumDays / float64(b.count)
		if meanDays <= bottleneckDaysMedium {
			continue
		}
		sev := model.SeverityMedium
		if meanDays > bottleneckDaysHigh {
			sev = model.SeverityHigh
		}
		anomalies = append(anomalies, model.Anomaly{
			ID:          id.New(),
			ProjectID:   projectID,
			Type:        model.AnomalyStatusBottleneck,
			Severity:    sev,
			Description: fmt.Sprintf("issues in %q average %.0f days without movement", b.name, meanDays),
			Details:     map[string]any{"status": b.name, "issues": b.count, "mean_days": meanDays},
			DetectedAt:  d.now().UTC(),
		})
	}
	return anomalies, nil
}

// persist resolves prior findings per checked type and stores only the
// high severity ones, so the anomalies table reflects the latest scan.
func (d *detector) persist(ctx context.Context, projectID int64, anomalies []model.Anomaly) error {
	checked := []model.AnomalyType{
		model.AnomalyBurndownBehind, model.AnomalyBlockedRatio,
		model.AnomalyUnestimated, model.AnomalyScopeCreep,
		model.AnomalyCapacityOverload, model.AnomalyVelocityDrop,
		model.AnomalyStaleIssues, model.AnomalyCreationSpike,
		model.AnomalyStatusBottleneck,
	}
	for _, t := range checked {
		if err := d.anomalyStore.ResolveByType(ctx, projectID, t); err != nil {
			return fmt.Errorf("resolving prior %s anomalies: %w", t, err)
		}
	}

	persisted := 0
	for i := range anomalies {
		if anomalies[i].Severity != model.SeverityHigh {
			continue
		}
		if err := d.anomalyStore.Create(ctx, &anomalies[i]); err != nil {
			return fmt.Errorf("persisting anomaly: %w", err)
		}
		d.notifyAdmins(ctx, &anomalies[i])
		persisted++
	}

	slog.InfoContext(ctx, "anomaly scan finished",
		"found", len(anomalies),
		"persisted", persisted)
	return nil
}

// notifyAdmins alerts the project's active admins about a persisted
// anomaly. Best effort, a scan must not fail over a notification.
func (d *detector) notifyAdmins(ctx context.Context, a *model.Anomaly) {
	if d.notificationStore == nil || d.projectStore == nil {
		return
	}
	members, err := d.projectStore.ListMembers(ctx, a.ProjectID)
	if err != nil {
		slog.WarnContext(ctx, "listing members for anomaly notification failed",
			"project_id", a.ProjectID,
			"error", err)
		return
	}
	for _, m := range members {
		if !m.IsActive || m.Role != model.MemberRoleAdmin {
			continue
		}
		n := &model.Notification{
			ID:          id.New(),
			RecipientID: m.UserID,
			Type:        model.NotificationAnomalyDetected,
			Title:       "Anomaly detected",
			Message:     a.Description,
			Data:        map[string]any{"project_id": a.ProjectID, "anomaly_id": a.ID, "anomaly_type": string(a.Type)},
		}
		if err := d.notificationStore.Create(ctx, n); err != nil {
			slog.WarnContext(ctx, "anomaly notification write failed",
				"recipient_id", m.UserID,
				"error", err)
		}
	}
}

func (d *detector) ListOpen(ctx context.Context, projectID int64) ([]model.Anomaly, error) {
	return d.anomalyStore.ListOpenByProject(ctx, projectID)
}

func (d *detector) Resolve(ctx context.Context, anomalyID int64) error {
	return d.anomalyStore.Resolve(ctx, anomalyID)
}
