package service_test

import (
	"context"
	"time"

	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/service"
	"ficct.app/scrum/internal/store"
)

// The fakes embed their store interface so only the methods a spec
// exercises need a function field. Calling anything else panics, which
// is exactly what a spec touching unexpected stores should do.

type fakeIssueStore struct {
	store.IssueStore
	getByIDFn        func(ctx context.Context, id int64) (*model.Issue, error)
	createFn         func(ctx context.Context, issue *model.Issue) error
	updateFn         func(ctx context.Context, issue *model.Issue) error
	updateStatusFn   func(ctx context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error)
	moveToSprintFn   func(ctx context.Context, id int64, sprintID *int64) (*model.Issue, error)
	listBySprintFn   func(ctx context.Context, sprintID int64) ([]model.Issue, error)
	sprintProgressFn func(ctx context.Context, sprintID int64) (*model.SprintProgress, error)
	listLinksFn      func(ctx context.Context, issueID int64) ([]model.IssueLink, error)
	createLinkFn     func(ctx context.Context, l *model.IssueLink) error
}

func (f *fakeIssueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeIssueStore) Create(ctx context.Context, issue *model.Issue) error {
	return f.createFn(ctx, issue)
}

func (f *fakeIssueStore) Update(ctx context.Context, issue *model.Issue) error {
	return f.updateFn(ctx, issue)
}

func (f *fakeIssueStore) UpdateStatus(ctx context.Context, id, statusID int64, resolvedAt *time.Time) (*model.Issue, error) {
	return f.updateStatusFn(ctx, id, statusID, resolvedAt)
}

func (f *fakeIssueStore) MoveToSprint(ctx context.Context, id int64, sprintID *int64) (*model.Issue, error) {
	return f.moveToSprintFn(ctx, id, sprintID)
}

func (f *fakeIssueStore) ListBySprint(ctx context.Context, sprintID int64) ([]model.Issue, error) {
	return f.listBySprintFn(ctx, sprintID)
}

func (f *fakeIssueStore) SprintProgress(ctx context.Context, sprintID int64) (*model.SprintProgress, error) {
	return f.sprintProgressFn(ctx, sprintID)
}

func (f *fakeIssueStore) ListLinks(ctx context.Context, issueID int64) ([]model.IssueLink, error) {
	return f.listLinksFn(ctx, issueID)
}

func (f *fakeIssueStore) CreateLink(ctx context.Context, l *model.IssueLink) error {
	return f.createLinkFn(ctx, l)
}

type fakeWorkflowStore struct {
	store.WorkflowStore
	getIssueTypeFn     func(ctx context.Context, id int64) (*model.IssueType, error)
	getStatusFn        func(ctx context.Context, id int64) (*model.WorkflowStatus, error)
	getInitialStatusFn func(ctx context.Context, projectID int64) (*model.WorkflowStatus, error)
	listStatusesFn     func(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error)
	transitionExistsFn func(ctx context.Context, projectID, fromStatusID, toStatusID int64) (bool, error)
	createIssueTypeFn  func(ctx context.Context, t *model.IssueType) error
	createStatusFn     func(ctx context.Context, s *model.WorkflowStatus) error
	createTransitionFn func(ctx context.Context, t *model.WorkflowTransition) error
}

func (f *fakeWorkflowStore) GetIssueType(ctx context.Context, id int64) (*model.IssueType, error) {
	return f.getIssueTypeFn(ctx, id)
}

func (f *fakeWorkflowStore) GetStatus(ctx context.Context, id int64) (*model.WorkflowStatus, error) {
	return f.getStatusFn(ctx, id)
}

func (f *fakeWorkflowStore) GetInitialStatus(ctx context.Context, projectID int64) (*model.WorkflowStatus, error) {
	return f.getInitialStatusFn(ctx, projectID)
}

func (f *fakeWorkflowStore) ListStatuses(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error) {
	return f.listStatusesFn(ctx, projectID)
}

func (f *fakeWorkflowStore) TransitionExists(ctx context.Context, projectID, fromStatusID, toStatusID int64) (bool, error) {
	return f.transitionExistsFn(ctx, projectID, fromStatusID, toStatusID)
}

func (f *fakeWorkflowStore) CreateIssueType(ctx context.Context, t *model.IssueType) error {
	return f.createIssueTypeFn(ctx, t)
}

func (f *fakeWorkflowStore) CreateStatus(ctx context.Context, s *model.WorkflowStatus) error {
	return f.createStatusFn(ctx, s)
}

func (f *fakeWorkflowStore) CreateTransition(ctx context.Context, t *model.WorkflowTransition) error {
	return f.createTransitionFn(ctx, t)
}

type fakeSprintStore struct {
	store.SprintStore
	getByIDFn   func(ctx context.Context, id int64) (*model.Sprint, error)
	getActiveFn func(ctx context.Context, projectID int64) (*model.Sprint, error)
	startFn     func(ctx context.Context, id int64, start, end time.Time, committedPoints int32) (*model.Sprint, error)
	completeFn  func(ctx context.Context, id int64, completedPoints int32) (*model.Sprint, error)
}

func (f *fakeSprintStore) GetByID(ctx context.Context, id int64) (*model.Sprint, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeSprintStore) GetActive(ctx context.Context, projectID int64) (*model.Sprint, error) {
	return f.getActiveFn(ctx, projectID)
}

func (f *fakeSprintStore) Start(ctx context.Context, id int64, start, end time.Time, committedPoints int32) (*model.Sprint, error) {
	return f.startFn(ctx, id, start, end, committedPoints)
}

func (f *fakeSprintStore) Complete(ctx context.Context, id int64, completedPoints int32) (*model.Sprint, error) {
	return f.completeFn(ctx, id, completedPoints)
}

type fakeProjectStore struct {
	store.ProjectStore
	getByIDFn       func(ctx context.Context, id int64) (*model.Project, error)
	createFn        func(ctx context.Context, p *model.Project) error
	nextKeyNumberFn func(ctx context.Context, projectID int64) (int64, error)
	addMemberFn     func(ctx context.Context, m *model.ProjectMember) error
	getMemberFn     func(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
	listMembersFn   func(ctx context.Context, projectID int64) ([]model.ProjectMember, error)
}

func (f *fakeProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProjectStore) Create(ctx context.Context, p *model.Project) error {
	return f.createFn(ctx, p)
}

func (f *fakeProjectStore) NextKeyNumber(ctx context.Context, projectID int64) (int64, error) {
	return f.nextKeyNumberFn(ctx, projectID)
}

func (f *fakeProjectStore) AddMember(ctx context.Context, m *model.ProjectMember) error {
	return f.addMemberFn(ctx, m)
}

func (f *fakeProjectStore) GetMember(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	return f.getMemberFn(ctx, projectID, userID)
}

func (f *fakeProjectStore) ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	return f.listMembersFn(ctx, projectID)
}

// sentNotification is one captured Notify call.
type sentNotification struct {
	RecipientID int64
	Type        model.NotificationType
	Title       string
	Message     string
	Data        map[string]any
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID int64, t model.NotificationType, title, message string, data map[string]any) {
	f.sent = append(f.sent, sentNotification{RecipientID: recipientID, Type: t, Title: title, Message: message, Data: data})
}

type fakeNotificationStore struct {
	store.NotificationStore
	createFn      func(ctx context.Context, n *model.Notification) error
	listFn        func(ctx context.Context, recipientID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	countUnreadFn func(ctx context.Context, recipientID int64) (int64, error)
	markReadFn    func(ctx context.Context, id, recipientID int64) (*model.Notification, error)
	markAllReadFn func(ctx context.Context, recipientID int64) error
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	return f.createFn(ctx, n)
}

func (f *fakeNotificationStore) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	return f.listFn(ctx, recipientID, unreadOnly, limit)
}

func (f *fakeNotificationStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return f.countUnreadFn(ctx, recipientID)
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id, recipientID int64) (*model.Notification, error) {
	return f.markReadFn(ctx, id, recipientID)
}

func (f *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID int64) error {
	return f.markAllReadFn(ctx, recipientID)
}

type fakeWorkspaceStore struct {
	store.WorkspaceStore
	getByIDFn func(ctx context.Context, id int64) (*model.Workspace, error)
}

func (f *fakeWorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	return f.getByIDFn(ctx, id)
}

// fakeTxRunner hands the callback a provider over the same fakes, so a
// spec observes transactional writes exactly like direct ones.
type fakeTxRunner struct {
	provider fakeStoreProvider
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	return fn(f.provider)
}

type fakeStoreProvider struct {
	projects  store.ProjectStore
	workflows store.WorkflowStore
	issues    store.IssueStore
	sprints   store.SprintStore
}

func (f fakeStoreProvider) Projects() store.ProjectStore   { return f.projects }
func (f fakeStoreProvider) Workflows() store.WorkflowStore { return f.workflows }
func (f fakeStoreProvider) Issues() store.IssueStore       { return f.issues }
func (f fakeStoreProvider) Sprints() store.SprintStore     { return f.sprints }
