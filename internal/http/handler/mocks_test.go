package handler_test

import (
	"context"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

// Mocks embed the service interface so a spec only wires the calls it
// expects. Anything else nil-panics the spec.

type mockIssueService struct {
	service.IssueService
	createFn     func(ctx context.Context, input service.CreateIssueInput) (*model.Issue, error)
	getFn        func(ctx context.Context, id int64) (*model.Issue, error)
	listFn       func(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error)
	transitionFn func(ctx context.Context, id, toStatusID int64) (*model.Issue, error)
}

func (m *mockIssueService) Create(ctx context.Context, input service.CreateIssueInput) (*model.Issue, error) {
	return m.createFn(ctx, input)
}

func (m *mockIssueService) Get(ctx context.Context, id int64) (*model.Issue, error) {
	return m.getFn(ctx, id)
}

func (m *mockIssueService) List(ctx context.Context, projectID int64, filter store.IssueFilter) ([]model.Issue, error) {
	return m.listFn(ctx, projectID, filter)
}

func (m *mockIssueService) Transition(ctx context.Context, id, toStatusID int64) (*model.Issue, error) {
	return m.transitionFn(ctx, id, toStatusID)
}

type mockNotificationService struct {
	service.NotificationService
	listFn        func(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	unreadCountFn func(ctx context.Context, userID int64) (int64, error)
	markReadFn    func(ctx context.Context, userID, notificationID int64) (*model.Notification, error)
}

func (m *mockNotificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	return m.listFn(ctx, userID, unreadOnly, limit)
}

func (m *mockNotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return m.unreadCountFn(ctx, userID)
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID int64) (*model.Notification, error) {
	return m.markReadFn(ctx, userID, notificationID)
}

type mockProjectService struct {
	service.ProjectService
	getFn         func(ctx context.Context, id int64) (*model.Project, error)
	requireRoleFn func(ctx context.Context, projectID, userID int64, minRole model.MemberRole) error
}

func (m *mockProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return m.getFn(ctx, id)
}

func (m *mockProjectService) RequireRole(ctx context.Context, projectID, userID int64, minRole model.MemberRole) error {
	return m.requireRoleFn(ctx, projectID, userID, minRole)
}
