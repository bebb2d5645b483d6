package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

var _ = Describe("ProjectService", func() {
	var (
		ctx        context.Context
		projects   *fakeProjectStore
		workflows  *fakeWorkflowStore
		workspaces *fakeWorkspaceStore
		svc        service.ProjectService
	)

	const workspaceID = int64(300)

	BeforeEach(func() {
		ctx = context.Background()
		projects = &fakeProjectStore{}
		workflows = &fakeWorkflowStore{}
		workspaces = &fakeWorkspaceStore{}

		txRunner := &fakeTxRunner{provider: fakeStoreProvider{
			projects:  projects,
			workflows: workflows,
		}}
		svc = service.NewProjectService(projects, workflows, workspaces, txRunner)
	})

	Describe("Create", func() {
		var (
			members     []*model.ProjectMember
			issueTypes  []*model.IssueType
			statuses    []*model.WorkflowStatus
			transitions []*model.WorkflowTransition
		)

		BeforeEach(func() {
			members = nil
			issueTypes = nil
			statuses = nil
			transitions = nil

			workspaces.getByIDFn = func(_ context.Context, wsID int64) (*model.Workspace, error) {
				return &model.Workspace{ID: wsID, Name: "Engineering"}, nil
			}
			projects.createFn = func(_ context.Context, _ *model.Project) error {
				return nil
			}
			projects.addMemberFn = func(_ context.Context, m *model.ProjectMember) error {
				members = append(members, m)
				return nil
			}
			workflows.createIssueTypeFn = func(_ context.Context, t *model.IssueType) error {
				issueTypes = append(issueTypes, t)
				return nil
			}
			workflows.createStatusFn = func(_ context.Context, st *model.WorkflowStatus) error {
				statuses = append(statuses, st)
				return nil
			}
			workflows.createTransitionFn = func(_ context.Context, t *model.WorkflowTransition) error {
				transitions = append(transitions, t)
				return nil
			}
		})

		It("seeds the creator as admin plus default types, statuses and transitions", func() {
			project, err := svc.Create(ctx, workspaceID, "Payments", "PAY", nil, nil, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(project.Status).To(Equal(model.ProjectStatusActive))

			Expect(members).To(HaveLen(1))
			Expect(members[0].UserID).To(Equal(int64(7)))
			Expect(members[0].Role).To(Equal(model.MemberRoleAdmin))
			Expect(members[0].IsActive).To(BeTrue())

			Expect(issueTypes).To(HaveLen(5))
			Expect(issueTypes[0].Name).To(Equal("Epic"))
			Expect(issueTypes[4].Name).To(Equal("Subtask"))

			Expect(statuses).To(HaveLen(5))
			Expect(statuses[0].IsInitial).To(BeTrue())
			Expect(statuses[4].IsFinal).To(BeTrue())

			Expect(transitions).To(HaveLen(8))
			for _, tr := range transitions {
				Expect(tr.ProjectID).To(Equal(project.ID))
				Expect(tr.IsActive).To(BeTrue())
			}
		})

		DescribeTable("project key validation",
			func(key string, ok bool) {
				_, err := svc.Create(ctx, workspaceID, "Payments", key, nil, nil, 7)
				if ok {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(MatchError(ContainSubstring("invalid project key")))
				}
			},
			Entry("uppercase letters", "PAY", true),
			Entry("letters and digits", "API2", true),
			Entry("single character", "P", false),
			Entry("lowercase", "pay", false),
			Entry("leading digit", "2PAY", false),
			Entry("too long", "ABCDEFGHIJK", false),
			Entry("hyphenated", "PAY-X", false),
		)
	})

	Describe("RequireRole", func() {
		member := func(role model.MemberRole, active bool) *model.ProjectMember {
			return &model.ProjectMember{ProjectID: 1, UserID: 7, Role: role, IsActive: active}
		}

		It("allows roles at or above the minimum", func() {
			projects.getMemberFn = func(_ context.Context, _, _ int64) (*model.ProjectMember, error) {
				return member(model.MemberRoleAdmin, true), nil
			}
			Expect(svc.RequireRole(ctx, 1, 7, model.MemberRoleMember)).To(Succeed())
		})

		It("rejects roles below the minimum", func() {
			projects.getMemberFn = func(_ context.Context, _, _ int64) (*model.ProjectMember, error) {
				return member(model.MemberRoleViewer, true), nil
			}
			err := svc.RequireRole(ctx, 1, 7, model.MemberRoleMember)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("rejects inactive members", func() {
			projects.getMemberFn = func(_ context.Context, _, _ int64) (*model.ProjectMember, error) {
				return member(model.MemberRoleAdmin, false), nil
			}
			err := svc.RequireRole(ctx, 1, 7, model.MemberRoleViewer)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("rejects non-members", func() {
			projects.getMemberFn = func(_ context.Context, _, _ int64) (*model.ProjectMember, error) {
				return nil, store.ErrNotFound
			}
			err := svc.RequireRole(ctx, 1, 9, model.MemberRoleViewer)
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("AddMember", func() {
		It("rejects unknown roles", func() {
			_, err := svc.AddMember(ctx, 1, 7, model.MemberRole("owner"))
			Expect(err).To(MatchError(ContainSubstring("invalid member role")))
		})
	})
})
