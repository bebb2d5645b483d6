package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

// ErrForbidden is returned when the acting user lacks the required
// project role for an operation.
var ErrForbidden = errors.New("insufficient project role")

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

type ProjectService interface {
	Create(ctx context.Context, workspaceID int64, name, key string, description *string, leadID *int64, creatorID int64) (*model.Project, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error)
	Update(ctx context.Context, id int64, name, description *string, leadID *int64) (*model.Project, error)
	Archive(ctx context.Context, id int64) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, projectID, userID int64, role model.MemberRole) (*model.ProjectMember, error)
	ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, userID int64) error
	// RequireRole verifies the user is an active member with at least
	// the given role. Admin > member > viewer.
	RequireRole(ctx context.Context, projectID, userID int64, minRole model.MemberRole) error
	ListIssueTypes(ctx context.Context, projectID int64) ([]model.IssueType, error)
	ListStatuses(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error)
}

type projectService struct {
	projectStore  store.ProjectStore
	workflowStore store.WorkflowStore
	wsStore       store.WorkspaceStore
	txRunner      TxRunner
}

func NewProjectService(projectStore store.ProjectStore, workflowStore store.WorkflowStore, wsStore store.WorkspaceStore, txRunner TxRunner) ProjectService {
	return &projectService{
		projectStore:  projectStore,
		workflowStore: workflowStore,
		wsStore:       wsStore,
		txRunner:      txRunner,
	}
}

// Create inserts the project and seeds its default issue types, workflow
// statuses and transition matrix in a single transaction, so a project is
// never observable without a usable workflow.
func (s *projectService) Create(ctx context.Context, workspaceID int64, name, key string, description *string, leadID *int64, creatorID int64) (*model.Project, error) {
	if !projectKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("invalid project key %q: must be 2-10 uppercase letters or digits starting with a letter", key)
	}
	if _, err := s.wsStore.GetByID(ctx, workspaceID); err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	project := &model.Project{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Key:         key,
		Description: description,
		LeadID:      leadID,
		Status:      model.ProjectStatusActive,
	}

	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Projects().Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		admin := &model.ProjectMember{
			ID:        id.New(),
			ProjectID: project.ID,
			UserID:    creatorID,
			Role:      model.MemberRoleAdmin,
			IsActive:  true,
		}
		if err := stores.Projects().AddMember(ctx, admin); err != nil {
			return fmt.Errorf("adding creator as admin: %w", err)
		}

		if err := seedIssueTypes(ctx, stores.Workflows(), project.ID); err != nil {
			return err
		}
		return seedWorkflow(ctx, stores.Workflows(), project.ID)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func seedIssueTypes(ctx context.Context, workflows store.WorkflowStore, projectID int64) error {
	defaults := []struct {
		name     string
		category model.IssueTypeCategory
	}{
		{"Epic", model.IssueTypeCategoryEpic},
		{"Story", model.IssueTypeCategoryStory},
		{"Task", model.IssueTypeCategoryTask},
		{"Bug", model.IssueTypeCategoryBug},
		{"Subtask", model.IssueTypeCategorySubtask},
	}
	for i, d := range defaults {
		t := &model.IssueType{
			ID:        id.New(),
			ProjectID: projectID,
			Name:      d.name,
			Category:  d.category,
			Position:  int32(i + 1),
		}
		if err := workflows.CreateIssueType(ctx, t); err != nil {
			return fmt.Errorf("seeding issue type %s: %w", d.name, err)
		}
	}
	return nil
}

func seedWorkflow(ctx context.Context, workflows store.WorkflowStore, projectID int64) error {
	defaults := []struct {
		name      string
		category  model.StatusCategory
		isInitial bool
		isFinal   bool
	}{
		{"Backlog", model.StatusCategoryTodo, true, false},
		{"To Do", model.StatusCategoryTodo, false, false},
		{"In Progress", model.StatusCategoryInProgress, false, false},
		{"In Review", model.StatusCategoryInProgress, false, false},
		{"Done", model.StatusCategoryDone, false, true},
	}

	statuses := make(map[string]*model.WorkflowStatus, len(defaults))
	for i, d := range defaults {
		st := &model.WorkflowStatus{
			ID:        id.New(),
			ProjectID: projectID,
			Name:      d.name,
			Category:  d.category,
			IsInitial: d.isInitial,
			IsFinal:   d.isFinal,
			Position:  int32(i + 1),
		}
		if err := workflows.CreateStatus(ctx, st); err != nil {
			return fmt.Errorf("seeding status %s: %w", d.name, err)
		}
		statuses[d.name] = st
	}

	transitions := [][2]string{
		{"Backlog", "To Do"},
		{"To Do", "Backlog"},
		{"To Do", "In Progress"},
		{"In Progress", "To Do"},
		{"In Progress", "In Review"},
		{"In Review", "In Progress"},
		{"In Review", "Done"},
		{"Done", "To Do"}, // reopen
	}
	for _, pair := range transitions {
		t := &model.WorkflowTransition{
			ID:           id.New(),
			ProjectID:    projectID,
			FromStatusID: statuses[pair[0]].ID,
			ToStatusID:   statuses[pair[1]].ID,
			IsActive:     true,
		}
		if err := workflows.CreateTransition(ctx, t); err != nil {
			return fmt.Errorf("seeding transition %s -> %s: %w", pair[0], pair[1], err)
		}
	}
	return nil
}

func (s *projectService) Get(ctx context.Context, projectID int64) (*model.Project, error) {
	return s.projectStore.GetByID(ctx, projectID)
}

func (s *projectService) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	return s.projectStore.ListByWorkspace(ctx, workspaceID)
}

func (s *projectService) Update(ctx context.Context, projectID int64, name, description *string, leadID *int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		project.Name = *name
	}
	if description != nil {
		project.Description = description
	}
	if leadID != nil {
		project.LeadID = leadID
	}
	if err := s.projectStore.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return project, nil
}

func (s *projectService) Archive(ctx context.Context, projectID int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Status = model.ProjectStatusArchived
	if err := s.projectStore.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("archiving project: %w", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, projectID int64) error {
	return s.projectStore.Delete(ctx, projectID)
}

func (s *projectService) AddMember(ctx context.Context, projectID, userID int64, role model.MemberRole) (*model.ProjectMember, error) {
	switch role {
	case model.MemberRoleAdmin, model.MemberRoleMember, model.MemberRoleViewer:
	default:
		return nil, fmt.Errorf("invalid member role %q", role)
	}

	member := &model.ProjectMember{
		ID:        id.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		IsActive:  true,
	}
	if err := s.projectStore.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}
	return member, nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	return s.projectStore.ListMembers(ctx, projectID)
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID int64) error {
	return s.projectStore.RemoveMember(ctx, projectID, userID)
}

var roleRank = map[model.MemberRole]int{
	model.MemberRoleViewer: 1,
	model.MemberRoleMember: 2,
	model.MemberRoleAdmin:  3,
}

func (s *projectService) RequireRole(ctx context.Context, projectID, userID int64, minRole model.MemberRole) error {
	member, err := s.projectStore.GetMember(ctx, projectID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return ErrForbidden
		}
		return fmt.Errorf("loading membership: %w", err)
	}
	if !member.IsActive {
		return ErrForbidden
	}
	if roleRank[member.Role] < roleRank[minRole] {
		return ErrForbidden
	}
	return nil
}

func (s *projectService) ListIssueTypes(ctx context.Context, projectID int64) ([]model.IssueType, error) {
	return s.workflowStore.ListIssueTypes(ctx, projectID)
}

func (s *projectService) ListStatuses(ctx context.Context, projectID int64) ([]model.WorkflowStatus, error) {
	return s.workflowStore.ListStatuses(ctx, projectID)
}
