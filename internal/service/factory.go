package service

import (
	"ficct.app/scrum/internal/queue"
	"ficct.app/scrum/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	producer queue.Producer
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		producer: producer,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations())
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(s.stores.Workspaces(), s.stores.Organizations())
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores.Projects(), s.stores.Workflows(), s.stores.Workspaces(), s.txRunner)
}

func (s *Services) Issues() IssueService {
	return NewIssueService(s.stores.Issues(), s.stores.Workflows(), s.stores.Sprints(), s.txRunner, s.producer, s.Notifications())
}

func (s *Services) Sprints() SprintService {
	return NewSprintService(s.stores.Sprints(), s.stores.Issues(), s.stores.Workflows(), s.stores.Projects(), s.txRunner, s.Notifications())
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.stores.Notifications())
}

func (s *Services) Board() BoardService {
	return NewBoardService(s.stores.Issues(), s.stores.Workflows())
}
