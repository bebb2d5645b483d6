package insight

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

type stubIssueStore struct {
	store.IssueStore
	progress      *model.SprintProgress
	addedAfter    int64
	assigneeLoad  map[int64]int64
	projectIssues []model.Issue
	staleIssues   []model.Issue
}

func (s *stubIssueStore) SprintProgress(_ context.Context, _ int64) (*model.SprintProgress, error) {
	return s.progress, nil
}

func (s *stubIssueStore) CountAddedAfter(_ context.Context, _ int64, _ time.Time) (int64, error) {
	return s.addedAfter, nil
}

func (s *stubIssueStore) AssigneeLoad(_ context.Context, _ int64) (map[int64]int64, error) {
	return s.assigneeLoad, nil
}

func (s *stubIssueStore) ListByProject(_ context.Context, _ int64) ([]model.Issue, error) {
	return s.projectIssues, nil
}

func (s *stubIssueStore) ListStale(_ context.Context, _ int64, _ time.Time) ([]model.Issue, error) {
	return s.staleIssues, nil
}

type stubSprintStore struct {
	store.SprintStore
	sprint    *model.Sprint
	active    *model.Sprint
	completed []model.Sprint
}

func (s *stubSprintStore) GetByID(_ context.Context, _ int64) (*model.Sprint, error) {
	return s.sprint, nil
}

func (s *stubSprintStore) GetActive(_ context.Context, _ int64) (*model.Sprint, error) {
	if s.active == nil {
		return nil, store.ErrNotFound
	}
	return s.active, nil
}

func (s *stubSprintStore) ListCompleted(_ context.Context, _ int64, _ int32) ([]model.Sprint, error) {
	return s.completed, nil
}

type stubWorkflowStore struct {
	store.WorkflowStore
	statuses []model.WorkflowStatus
}

func (s *stubWorkflowStore) ListStatuses(_ context.Context, _ int64) ([]model.WorkflowStatus, error) {
	return s.statuses, nil
}

type stubAnomalyStore struct {
	store.AnomalyStore
	created  []model.Anomaly
	resolved []model.AnomalyType
}

func (s *stubAnomalyStore) Create(_ context.Context, a *model.Anomaly) error {
	s.created = append(s.created, *a)
	return nil
}

func (s *stubAnomalyStore) ResolveByType(_ context.Context, _ int64, t model.AnomalyType) error {
	s.resolved = append(s.resolved, t)
	return nil
}

type stubProjectStore struct {
	store.ProjectStore
	members []model.ProjectMember
}

func (s *stubProjectStore) ListMembers(_ context.Context, _ int64) ([]model.ProjectMember, error) {
	return s.members, nil
}

type stubNotificationStore struct {
	store.NotificationStore
	created []model.Notification
}

func (s *stubNotificationStore) Create(_ context.Context, n *model.Notification) error {
	s.created = append(s.created, *n)
	return nil
}

func anomalyTypes(anomalies []model.Anomaly) []model.AnomalyType {
	types := make([]model.AnomalyType, 0, len(anomalies))
	for _, a := range anomalies {
		types = append(types, a.Type)
	}
	return types
}

func findAnomaly(anomalies []model.Anomaly, t model.AnomalyType) *model.Anomaly {
	for i := range anomalies {
		if anomalies[i].Type == t {
			return &anomalies[i]
		}
	}
	return nil
}

var _ = Describe("Detector", func() {
	var (
		ctx       context.Context
		issues    *stubIssueStore
		sprints   *stubSprintStore
		workflows *stubWorkflowStore
		anomalies *stubAnomalyStore
		d         *detector
		now       time.Time
	)

	const projectID = int64(400)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
		issues = &stubIssueStore{
			progress:     &model.SprintProgress{},
			assigneeLoad: map[int64]int64{},
		}
		sprints = &stubSprintStore{}
		workflows = &stubWorkflowStore{}
		anomalies = &stubAnomalyStore{}
		d = &detector{
			issueStore:    issues,
			sprintStore:   sprints,
			workflowStore: workflows,
			anomalyStore:  anomalies,
			now:           func() time.Time { return now },
		}
	})

	// An active sprint halfway through its two weeks.
	activeSprint := func() *model.Sprint {
		start := now.AddDate(0, 0, -7)
		end := now.AddDate(0, 0, 7)
		return &model.Sprint{ID: 1, ProjectID: projectID, Status: model.SprintStatusActive, StartDate: &start, EndDate: &end}
	}

	Describe("AnalyzeSprint", func() {
		BeforeEach(func() {
			sprints.sprint = activeSprint()
		})

		It("finds nothing in a healthy sprint", func() {
			// Halfway through with half the points done.
			issues.progress = &model.SprintProgress{TotalIssues: 10, TotalPoints: 20, CompletedPoints: 10}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeEmpty())
		})

		It("flags a sprint behind its burndown", func() {
			// Expected 0.5 done by now, actual 0.25, 25 points behind.
			issues.progress = &model.SprintProgress{TotalIssues: 10, TotalPoints: 20, CompletedPoints: 5}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyBurndownBehind)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityMedium))
			Expect(a.SprintID).To(HaveValue(Equal(int64(1))))
		})

		It("escalates a badly stalled burndown to high", func() {
			issues.progress = &model.SprintProgress{TotalIssues: 10, TotalPoints: 20, CompletedPoints: 0}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyBurndownBehind)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("grades the blocked ratio", func() {
			issues.progress = &model.SprintProgress{TotalIssues: 10, BlockedIssues: 6}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyBlockedRatio)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("flags unestimated issues, high above three", func() {
			issues.progress = &model.SprintProgress{TotalIssues: 10, UnestimatedIssues: 4}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyUnestimated)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("flags scope creep on active sprints", func() {
			issues.progress = &model.SprintProgress{TotalIssues: 10}
			issues.addedAfter = 3
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyScopeCreep)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityMedium))
		})

		It("flags overloaded assignees", func() {
			issues.progress = &model.SprintProgress{TotalIssues: 20}
			issues.assigneeLoad = map[int64]int64{7: 16, 8: 2}
			found, err := d.AnalyzeSprint(ctx, 1)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyCapacityOverload)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})
	})

	Describe("ScanProject", func() {
		It("flags a velocity drop against the sprint history", func() {
			// Newest first. Latest 5 against a history of 20/22/18/20.
			sprints.completed = []model.Sprint{
				{CompletedPoints: 5},
				{CompletedPoints: 20},
				{CompletedPoints: 22},
				{CompletedPoints: 18},
				{CompletedPoints: 20},
			}
			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyVelocityDrop)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("needs at least three completed sprints for velocity", func() {
			sprints.completed = []model.Sprint{{CompletedPoints: 5}, {CompletedPoints: 20}}
			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(anomalyTypes(found)).NotTo(ContainElement(model.AnomalyVelocityDrop))
		})

		It("flags stale issues, high past ten", func() {
			issues.staleIssues = make([]model.Issue, 11)
			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyStaleIssues)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("flags a creation spike against the trailing average", func() {
			var list []model.Issue
			// 8 issues this week against a 1-per-week history.
			for i := 0; i < 8; i++ {
				list = append(list, model.Issue{CreatedAt: now.AddDate(0, 0, -1)})
			}
			for i := 0; i < 8; i++ {
				list = append(list, model.Issue{CreatedAt: now.AddDate(0, 0, -14-i*7)})
			}
			issues.projectIssues = list

			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyCreationSpike)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityHigh))
		})

		It("flags statuses where issues sit for weeks", func() {
			workflows.statuses = []model.WorkflowStatus{
				{ID: 1, Name: "Backlog", Category: model.StatusCategoryTodo},
				{ID: 2, Name: "In Review", Category: model.StatusCategoryInProgress},
				{ID: 3, Name: "Done", Category: model.StatusCategoryDone, IsFinal: true},
			}
			stuck := now.AddDate(0, 0, -21)
			issues.projectIssues = []model.Issue{
				{ID: 11, StatusID: 2, UpdatedAt: stuck},
				{ID: 12, StatusID: 2, UpdatedAt: stuck},
				{ID: 13, StatusID: 2, UpdatedAt: stuck},
			}

			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			a := findAnomaly(found, model.AnomalyStatusBottleneck)
			Expect(a).NotTo(BeNil())
			Expect(a.Severity).To(Equal(model.SeverityMedium))
			Expect(a.Description).To(ContainSubstring("In Review"))
		})

		It("never reports todo statuses as bottlenecks", func() {
			workflows.statuses = []model.WorkflowStatus{
				{ID: 1, Name: "Backlog", Category: model.StatusCategoryTodo},
			}
			old := now.AddDate(0, 0, -60)
			issues.projectIssues = []model.Issue{
				{ID: 11, StatusID: 1, UpdatedAt: old},
				{ID: 12, StatusID: 1, UpdatedAt: old},
				{ID: 13, StatusID: 1, UpdatedAt: old},
			}

			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(anomalyTypes(found)).NotTo(ContainElement(model.AnomalyStatusBottleneck))
		})

		It("persists only high severity findings and resolves every checked type", func() {
			sprints.active = activeSprint()
			// Medium burndown lag plus a high blocked ratio.
			issues.progress = &model.SprintProgress{TotalIssues: 10, TotalPoints: 20, CompletedPoints: 5, BlockedIssues: 6}

			found, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(2))

			Expect(anomalies.resolved).To(HaveLen(9))
			Expect(anomalies.created).To(HaveLen(1))
			Expect(anomalies.created[0].Type).To(Equal(model.AnomalyBlockedRatio))
		})

		It("alerts active admins about persisted anomalies", func() {
			projects := &stubProjectStore{members: []model.ProjectMember{
				{UserID: 7, Role: model.MemberRoleAdmin, IsActive: true},
				{UserID: 8, Role: model.MemberRoleMember, IsActive: true},
				{UserID: 9, Role: model.MemberRoleAdmin, IsActive: false},
			}}
			sent := &stubNotificationStore{}
			d.projectStore = projects
			d.notificationStore = sent

			sprints.active = activeSprint()
			issues.progress = &model.SprintProgress{TotalIssues: 10, TotalPoints: 20, CompletedPoints: 5, BlockedIssues: 6}

			_, err := d.ScanProject(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())

			Expect(sent.created).To(HaveLen(1))
			Expect(sent.created[0].RecipientID).To(Equal(int64(7)))
			Expect(sent.created[0].Type).To(Equal(model.NotificationAnomalyDetected))
			Expect(sent.created[0].Data).To(HaveKeyWithValue("anomaly_type", string(model.AnomalyBlockedRatio)))
		})
	})
})
