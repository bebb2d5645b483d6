package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

var _ = Describe("SprintService", func() {
	var (
		ctx       context.Context
		sprints   *fakeSprintStore
		issues    *fakeIssueStore
		workflows *fakeWorkflowStore
		projects  *fakeProjectStore
		notifier  *fakeNotifier
		svc       service.SprintService
	)

	const projectID = int64(200)

	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	BeforeEach(func() {
		ctx = context.Background()
		sprints = &fakeSprintStore{}
		issues = &fakeIssueStore{}
		workflows = &fakeWorkflowStore{}
		projects = &fakeProjectStore{}
		projects.listMembersFn = func(_ context.Context, _ int64) ([]model.ProjectMember, error) {
			return nil, nil
		}
		notifier = &fakeNotifier{}

		txRunner := &fakeTxRunner{provider: fakeStoreProvider{
			workflows: workflows,
			issues:    issues,
			sprints:   sprints,
		}}
		svc = service.NewSprintService(sprints, issues, workflows, projects, txRunner, notifier)
	})

	Describe("Create", func() {
		It("rejects an end date before the start date", func() {
			start := day(10)
			end := day(5)
			_, err := svc.Create(ctx, projectID, "Sprint 1", "", &start, &end, 7)
			Expect(err).To(MatchError(ContainSubstring("end date must be after start date")))
		})
	})

	Describe("Start", func() {
		var planning *model.Sprint

		BeforeEach(func() {
			start := day(1)
			end := day(15)
			planning = &model.Sprint{
				ID:        1,
				ProjectID: projectID,
				Name:      "Sprint 1",
				Status:    model.SprintStatusPlanning,
				StartDate: &start,
				EndDate:   &end,
			}
			sprints.getByIDFn = func(_ context.Context, _ int64) (*model.Sprint, error) {
				return planning, nil
			}
			sprints.getActiveFn = func(_ context.Context, _ int64) (*model.Sprint, error) {
				return nil, store.ErrNotFound
			}
			issues.sprintProgressFn = func(_ context.Context, _ int64) (*model.SprintProgress, error) {
				return &model.SprintProgress{TotalPoints: 21}, nil
			}
		})

		It("snapshots committed points from the sprint's issues", func() {
			var committed int32
			sprints.startFn = func(_ context.Context, _ int64, _, _ time.Time, committedPoints int32) (*model.Sprint, error) {
				committed = committedPoints
				started := *planning
				started.Status = model.SprintStatusActive
				started.CommittedPoints = committedPoints
				return &started, nil
			}

			sprint, err := svc.Start(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(committed).To(Equal(int32(21)))
			Expect(sprint.Status).To(Equal(model.SprintStatusActive))
		})

		It("notifies active members that the sprint started", func() {
			sprints.startFn = func(_ context.Context, _ int64, _, _ time.Time, committedPoints int32) (*model.Sprint, error) {
				started := *planning
				started.Status = model.SprintStatusActive
				return &started, nil
			}
			projects.listMembersFn = func(_ context.Context, pid int64) ([]model.ProjectMember, error) {
				Expect(pid).To(Equal(projectID))
				return []model.ProjectMember{
					{UserID: 7, Role: model.MemberRoleAdmin, IsActive: true},
					{UserID: 8, Role: model.MemberRoleMember, IsActive: true},
					{UserID: 9, Role: model.MemberRoleMember, IsActive: false},
				}, nil
			}

			_, err := svc.Start(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.sent).To(HaveLen(2))
			Expect(notifier.sent[0].Type).To(Equal(model.NotificationSprintStarted))
			Expect([]int64{notifier.sent[0].RecipientID, notifier.sent[1].RecipientID}).To(ConsistOf(int64(7), int64(8)))
		})

		It("refuses sprints that are not in planning", func() {
			planning.Status = model.SprintStatusActive
			_, err := svc.Start(ctx, 1)
			Expect(err).To(MatchError(ContainSubstring("only planning sprints can start")))
		})

		It("requires start and end dates", func() {
			planning.EndDate = nil
			_, err := svc.Start(ctx, 1)
			Expect(err).To(MatchError(ContainSubstring("needs start and end dates")))
		})

		It("refuses when the project already has an active sprint", func() {
			sprints.getActiveFn = func(_ context.Context, _ int64) (*model.Sprint, error) {
				return &model.Sprint{ID: 9, ProjectID: projectID, Status: model.SprintStatusActive}, nil
			}
			_, err := svc.Start(ctx, 1)
			Expect(err).To(MatchError(ContainSubstring("already has active sprint")))
		})
	})

	Describe("Complete", func() {
		var active *model.Sprint

		BeforeEach(func() {
			active = &model.Sprint{ID: 1, ProjectID: projectID, Status: model.SprintStatusActive}
			sprints.getByIDFn = func(_ context.Context, sprintID int64) (*model.Sprint, error) {
				if sprintID == active.ID {
					return active, nil
				}
				return nil, store.ErrNotFound
			}
			workflows.listStatusesFn = func(_ context.Context, _ int64) ([]model.WorkflowStatus, error) {
				return []model.WorkflowStatus{
					{ID: 1, ProjectID: projectID, Name: "Backlog", IsInitial: true},
					{ID: 2, ProjectID: projectID, Name: "In Progress"},
					{ID: 3, ProjectID: projectID, Name: "Done", IsFinal: true},
				}, nil
			}
			issues.sprintProgressFn = func(_ context.Context, _ int64) (*model.SprintProgress, error) {
				return &model.SprintProgress{TotalPoints: 21, CompletedPoints: 13}, nil
			}
			issues.listBySprintFn = func(_ context.Context, _ int64) ([]model.Issue, error) {
				return []model.Issue{
					{ID: 11, StatusID: 3},
					{ID: 12, StatusID: 2},
					{ID: 13, StatusID: 1},
				}, nil
			}
			sprints.completeFn = func(_ context.Context, _ int64, completedPoints int32) (*model.Sprint, error) {
				done := *active
				done.Status = model.SprintStatusCompleted
				done.CompletedPoints = completedPoints
				return &done, nil
			}
		})

		It("moves only unresolved issues and stamps completed points", func() {
			var moved []int64
			issues.moveToSprintFn = func(_ context.Context, issueID int64, sprintID *int64) (*model.Issue, error) {
				Expect(sprintID).To(BeNil())
				moved = append(moved, issueID)
				return &model.Issue{ID: issueID}, nil
			}

			sprint, err := svc.Complete(ctx, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal([]int64{12, 13}))
			Expect(sprint.CompletedPoints).To(Equal(int32(13)))
			Expect(sprint.Status).To(Equal(model.SprintStatusCompleted))
		})

		It("refuses sprints that are not active", func() {
			active.Status = model.SprintStatusPlanning
			_, err := svc.Complete(ctx, 1, nil)
			Expect(err).To(MatchError(ContainSubstring("only active sprints can complete")))
		})

		It("rejects a target sprint from another project", func() {
			targetID := int64(2)
			sprints.getByIDFn = func(_ context.Context, sprintID int64) (*model.Sprint, error) {
				if sprintID == targetID {
					return &model.Sprint{ID: targetID, ProjectID: projectID + 1, Status: model.SprintStatusPlanning}, nil
				}
				return active, nil
			}
			_, err := svc.Complete(ctx, 1, &targetID)
			Expect(err).To(MatchError(ContainSubstring("belongs to another project")))
		})

		It("rejects a completed target sprint", func() {
			targetID := int64(2)
			sprints.getByIDFn = func(_ context.Context, sprintID int64) (*model.Sprint, error) {
				if sprintID == targetID {
					return &model.Sprint{ID: targetID, ProjectID: projectID, Status: model.SprintStatusCompleted}, nil
				}
				return active, nil
			}
			_, err := svc.Complete(ctx, 1, &targetID)
			Expect(err).To(MatchError(ContainSubstring("target sprint 2 is completed")))
		})
	})

	Describe("Burndown", func() {
		points := func(p int32) *int32 { return &p }

		BeforeEach(func() {
			start := day(1)
			end := day(5)
			sprints.getByIDFn = func(_ context.Context, _ int64) (*model.Sprint, error) {
				return &model.Sprint{ID: 1, ProjectID: projectID, Status: model.SprintStatusActive, StartDate: &start, EndDate: &end}, nil
			}
		})

		It("walks the remaining points day by day against the ideal line", func() {
			resolved := day(3).Add(10 * time.Hour)
			issues.listBySprintFn = func(_ context.Context, _ int64) ([]model.Issue, error) {
				return []model.Issue{
					{ID: 11, StoryPoints: points(5), ResolvedAt: &resolved},
					{ID: 12, StoryPoints: points(3)},
					{ID: 13}, // unestimated, contributes zero
				}, nil
			}

			series, err := svc.Burndown(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(series).To(HaveLen(5))

			Expect(series[0].Date).To(Equal(day(1)))
			Expect(series[0].RemainingPoints).To(Equal(int64(8)))
			Expect(series[0].IdealPoints).To(Equal(8.0))

			Expect(series[2].RemainingPoints).To(Equal(int64(3)))
			Expect(series[2].IdealPoints).To(Equal(4.0))

			Expect(series[4].RemainingPoints).To(Equal(int64(3)))
			Expect(series[4].IdealPoints).To(BeZero())
		})

		It("requires the sprint to have dates", func() {
			sprints.getByIDFn = func(_ context.Context, _ int64) (*model.Sprint, error) {
				return &model.Sprint{ID: 1, ProjectID: projectID, Status: model.SprintStatusPlanning}, nil
			}
			_, err := svc.Burndown(ctx, 1)
			Expect(err).To(MatchError(ContainSubstring("has no dates")))
		})
	})
})
