package service

import (
	"context"
	"fmt"

	"ficct.app/scrum/common"
	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

type WorkspaceService interface {
	Create(ctx context.Context, orgID int64, name string, slug, description *string) (*model.Workspace, error)
	Get(ctx context.Context, id int64) (*model.Workspace, error)
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Workspace, error)
	Update(ctx context.Context, id int64, name, description *string) (*model.Workspace, error)
	Delete(ctx context.Context, id int64) error
}

type workspaceService struct {
	wsStore  store.WorkspaceStore
	orgStore store.OrganizationStore
}

func NewWorkspaceService(wsStore store.WorkspaceStore, orgStore store.OrganizationStore) WorkspaceService {
	return &workspaceService{wsStore: wsStore, orgStore: orgStore}
}

func (s *workspaceService) Create(ctx context.Context, orgID int64, name string, slug, description *string) (*model.Workspace, error) {
	if _, err := s.orgStore.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("loading organization: %w", err)
	}

	finalSlug, err := s.ensureSlug(ctx, orgID, name, slug)
	if err != nil {
		return nil, err
	}

	ws := &model.Workspace{
		ID:             id.New(),
		OrganizationID: orgID,
		Name:           name,
		Slug:           finalSlug,
		Description:    description,
	}

	if err := s.wsStore.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	return ws, nil
}

func (s *workspaceService) Get(ctx context.Context, wsID int64) (*model.Workspace, error) {
	return s.wsStore.GetByID(ctx, wsID)
}

func (s *workspaceService) ListByOrganization(ctx context.Context, orgID int64) ([]model.Workspace, error) {
	return s.wsStore.ListByOrganization(ctx, orgID)
}

func (s *workspaceService) Update(ctx context.Context, wsID int64, name, description *string) (*model.Workspace, error) {
	ws, err := s.wsStore.GetByID(ctx, wsID)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		ws.Name = *name
	}
	if description != nil {
		ws.Description = description
	}
	if err := s.wsStore.Update(ctx, ws); err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}
	return ws, nil
}

func (s *workspaceService) Delete(ctx context.Context, wsID int64) error {
	return s.wsStore.Delete(ctx, wsID)
}

// Workspace slugs only need to be unique within their organization.
func (s *workspaceService) ensureSlug(ctx context.Context, orgID int64, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "workspace")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	if _, err := s.wsStore.GetByOrgAndSlug(ctx, orgID, base); err != nil {
		if err == store.ErrNotFound {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := s.wsStore.GetByOrgAndSlug(ctx, orgID, candidate)
		if err == store.ErrNotFound {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
