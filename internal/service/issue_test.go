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

var _ = Describe("IssueService", func() {
	var (
		ctx       context.Context
		issues    *fakeIssueStore
		workflows *fakeWorkflowStore
		sprints   *fakeSprintStore
		projects  *fakeProjectStore
		notifier  *fakeNotifier
		svc       service.IssueService
	)

	const projectID = int64(100)

	BeforeEach(func() {
		ctx = context.Background()
		issues = &fakeIssueStore{}
		workflows = &fakeWorkflowStore{}
		sprints = &fakeSprintStore{}
		projects = &fakeProjectStore{}
		notifier = &fakeNotifier{}

		txRunner := &fakeTxRunner{provider: fakeStoreProvider{
			projects:  projects,
			workflows: workflows,
			issues:    issues,
			sprints:   sprints,
		}}
		svc = service.NewIssueService(issues, workflows, sprints, txRunner, nil, notifier)
	})

	Describe("Create", func() {
		BeforeEach(func() {
			workflows.getIssueTypeFn = func(_ context.Context, id int64) (*model.IssueType, error) {
				return &model.IssueType{ID: id, ProjectID: projectID, Name: "Story"}, nil
			}
			workflows.getInitialStatusFn = func(_ context.Context, _ int64) (*model.WorkflowStatus, error) {
				return &model.WorkflowStatus{ID: 1, ProjectID: projectID, Name: "Backlog", IsInitial: true}, nil
			}
			projects.nextKeyNumberFn = func(_ context.Context, _ int64) (int64, error) {
				return 42, nil
			}
			issues.createFn = func(_ context.Context, _ *model.Issue) error {
				return nil
			}
		})

		It("allocates the key number inside the transaction", func() {
			issue, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Card checkout happy path",
				ReporterID:  7,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(issue.KeyNumber).To(Equal(int64(42)))
			Expect(issue.StatusID).To(Equal(int64(1)))
		})

		It("notifies the assignee when someone else assigns them", func() {
			assignee := int64(9)
			_, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Card checkout happy path",
				ReporterID:  7,
				AssigneeID:  &assignee,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.sent).To(HaveLen(1))
			Expect(notifier.sent[0].RecipientID).To(Equal(int64(9)))
			Expect(notifier.sent[0].Type).To(Equal(model.NotificationIssueAssigned))
		})

		It("does not notify a reporter assigning themselves", func() {
			assignee := int64(7)
			_, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Card checkout happy path",
				ReporterID:  7,
				AssigneeID:  &assignee,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.sent).To(BeEmpty())
		})

		It("defaults the priority to P3", func() {
			issue, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Refund flow",
				ReporterID:  7,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(issue.Priority).To(Equal(model.PriorityP3))
		})

		It("rejects issue types from another project", func() {
			workflows.getIssueTypeFn = func(_ context.Context, id int64) (*model.IssueType, error) {
				return &model.IssueType{ID: id, ProjectID: projectID + 1}, nil
			}
			_, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Wrong type",
				ReporterID:  7,
			})
			Expect(err).To(MatchError(ContainSubstring("does not belong to project")))
		})

		It("rejects assignment to a completed sprint", func() {
			sprints.getByIDFn = func(_ context.Context, id int64) (*model.Sprint, error) {
				return &model.Sprint{ID: id, ProjectID: projectID, Status: model.SprintStatusCompleted}, nil
			}
			sprintID := int64(55)
			_, err := svc.Create(ctx, service.CreateIssueInput{
				ProjectID:   projectID,
				IssueTypeID: 10,
				Title:       "Too late",
				ReporterID:  7,
				SprintID:    &sprintID,
			})
			Expect(err).To(MatchError(ContainSubstring("completed")))
		})
	})

	Describe("Update", func() {
		var persisted *model.Issue

		BeforeEach(func() {
			issues.getByIDFn = func(_ context.Context, id int64) (*model.Issue, error) {
				return &model.Issue{ID: id, ProjectID: projectID, IssueTypeID: 10, Title: "Webhook retries", Priority: model.PriorityP3}, nil
			}
			workflows.getIssueTypeFn = func(_ context.Context, id int64) (*model.IssueType, error) {
				return &model.IssueType{ID: id, ProjectID: projectID, Name: "Bug"}, nil
			}
			persisted = nil
			issues.updateFn = func(_ context.Context, issue *model.Issue) error {
				persisted = issue
				return nil
			}
		})

		It("hands the new issue type and rank to the store", func() {
			newType := int64(11)
			newRank := int32(4)
			issue, err := svc.Update(ctx, 1, service.UpdateIssueInput{
				IssueTypeID: &newType,
				Rank:        &newRank,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted).NotTo(BeNil())
			Expect(persisted.IssueTypeID).To(Equal(int64(11)))
			Expect(persisted.Rank).To(Equal(int32(4)))
			Expect(issue.IssueTypeID).To(Equal(int64(11)))
		})

		It("rejects an issue type from another project", func() {
			workflows.getIssueTypeFn = func(_ context.Context, id int64) (*model.IssueType, error) {
				return &model.IssueType{ID: id, ProjectID: projectID + 1, Name: "Bug"}, nil
			}
			newType := int64(99)
			_, err := svc.Update(ctx, 1, service.UpdateIssueInput{IssueTypeID: &newType})
			Expect(err).To(MatchError(ContainSubstring("does not belong to project")))
		})

		It("notifies a newly assigned user", func() {
			assignee := int64(9)
			_, err := svc.Update(ctx, 1, service.UpdateIssueInput{AssigneeID: &assignee})
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.sent).To(HaveLen(1))
			Expect(notifier.sent[0].RecipientID).To(Equal(int64(9)))
			Expect(notifier.sent[0].Type).To(Equal(model.NotificationIssueAssigned))
		})

		It("does not notify when the assignee is unchanged", func() {
			assignee := int64(9)
			issues.getByIDFn = func(_ context.Context, id int64) (*model.Issue, error) {
				return &model.Issue{ID: id, ProjectID: projectID, IssueTypeID: 10, Title: "Webhook retries", Priority: model.PriorityP3, AssigneeID: &assignee}, nil
			}
			_, err := svc.Update(ctx, 1, service.UpdateIssueInput{AssigneeID: &assignee})
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.sent).To(BeEmpty())
		})
	})

	Describe("Transition", func() {
		var existing *model.Issue

		BeforeEach(func() {
			existing = &model.Issue{ID: 1, ProjectID: projectID, StatusID: 2, Title: "Webhook retries"}
			issues.getByIDFn = func(_ context.Context, _ int64) (*model.Issue, error) {
				return existing, nil
			}
		})

		It("is a no-op when the target is the current status", func() {
			issue, err := svc.Transition(ctx, 1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(issue).To(Equal(existing))
		})

		It("rejects statuses from another project", func() {
			workflows.getStatusFn = func(_ context.Context, id int64) (*model.WorkflowStatus, error) {
				return &model.WorkflowStatus{ID: id, ProjectID: projectID + 1}, nil
			}
			_, err := svc.Transition(ctx, 1, 3)
			Expect(err).To(MatchError(ContainSubstring("does not belong to project")))
		})

		It("rejects transitions not in the matrix", func() {
			workflows.getStatusFn = func(_ context.Context, id int64) (*model.WorkflowStatus, error) {
				return &model.WorkflowStatus{ID: id, ProjectID: projectID}, nil
			}
			workflows.transitionExistsFn = func(_ context.Context, _, _, _ int64) (bool, error) {
				return false, nil
			}
			_, err := svc.Transition(ctx, 1, 3)
			Expect(err).To(MatchError(ContainSubstring("not allowed")))
		})

		It("stamps resolved_at when entering a final status", func() {
			workflows.getStatusFn = func(_ context.Context, id int64) (*model.WorkflowStatus, error) {
				return &model.WorkflowStatus{ID: id, ProjectID: projectID, Name: "Done", IsFinal: true}, nil
			}
			workflows.transitionExistsFn = func(_ context.Context, _, _, _ int64) (bool, error) {
				return true, nil
			}

			var gotResolvedAt *time.Time
			issues.updateStatusFn = func(_ context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error) {
				gotResolvedAt = resolvedAt
				updated := *existing
				updated.StatusID = statusID
				updated.ResolvedAt = resolvedAt
				return &updated, nil
			}

			issue, err := svc.Transition(ctx, 1, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotResolvedAt).NotTo(BeNil())
			Expect(issue.ResolvedAt).NotTo(BeNil())
		})

		It("leaves resolved_at empty for non-final statuses", func() {
			workflows.getStatusFn = func(_ context.Context, id int64) (*model.WorkflowStatus, error) {
				return &model.WorkflowStatus{ID: id, ProjectID: projectID, Name: "In Progress"}, nil
			}
			workflows.transitionExistsFn = func(_ context.Context, _, _, _ int64) (bool, error) {
				return true, nil
			}
			issues.updateStatusFn = func(_ context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error) {
				Expect(resolvedAt).To(BeNil())
				updated := *existing
				updated.StatusID = statusID
				return &updated, nil
			}

			issue, err := svc.Transition(ctx, 1, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(issue.StatusID).To(Equal(int64(3)))
		})
	})

	Describe("AddLink", func() {
		BeforeEach(func() {
			issues.getByIDFn = func(_ context.Context, id int64) (*model.Issue, error) {
				return &model.Issue{ID: id, ProjectID: projectID}, nil
			}
			issues.listLinksFn = func(_ context.Context, _ int64) ([]model.IssueLink, error) {
				return nil, nil
			}
			issues.createLinkFn = func(_ context.Context, _ *model.IssueLink) error {
				return nil
			}
		})

		It("links two issues", func() {
			link, err := svc.AddLink(ctx, 1, 2, model.LinkTypeBlocks, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(link.SourceIssueID).To(Equal(int64(1)))
			Expect(link.TargetIssueID).To(Equal(int64(2)))
		})

		It("rejects self links", func() {
			_, err := svc.AddLink(ctx, 1, 1, model.LinkTypeBlocks, 7)
			Expect(err).To(MatchError(ContainSubstring("cannot link to itself")))
		})

		It("rejects the same pair in reverse direction", func() {
			issues.listLinksFn = func(_ context.Context, _ int64) ([]model.IssueLink, error) {
				return []model.IssueLink{{SourceIssueID: 2, TargetIssueID: 1, LinkType: model.LinkTypeBlocks}}, nil
			}
			_, err := svc.AddLink(ctx, 1, 2, model.LinkTypeBlocks, 7)
			Expect(err).To(MatchError(ContainSubstring("already exists")))
		})

		It("rejects unknown link types", func() {
			_, err := svc.AddLink(ctx, 1, 2, model.LinkType("depends_on"), 7)
			Expect(err).To(MatchError(ContainSubstring("invalid link type")))
		})
	})

	Describe("List", func() {
		It("rejects invalid priority filters", func() {
			bad := model.Priority("P9")
			_, err := svc.List(ctx, projectID, store.IssueFilter{Priority: &bad})
			Expect(err).To(MatchError(ContainSubstring("invalid priority")))
		})
	})
})
