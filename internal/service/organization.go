package service

import (
	"context"
	"fmt"

	"ficct.app/scrum/common"
	"ficct.app/scrum/common/id"
	"ficct.app/scrum/internal/model"
	"ficct.app/scrum/internal/store"
)

type OrganizationService interface {
	Create(ctx context.Context, name string, slug *string) (*model.Organization, error)
	Get(ctx context.Context, id int64) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	Update(ctx context.Context, id int64, name *string) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error
}

type organizationService struct {
	orgStore store.OrganizationStore
}

func NewOrganizationService(orgStore store.OrganizationStore) OrganizationService {
	return &organizationService{orgStore: orgStore}
}

func (s *organizationService) Create(ctx context.Context, name string, slug *string) (*model.Organization, error) {
	finalSlug, err := s.ensureSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:   id.New(),
		Name: name,
		Slug: finalSlug,
	}

	if err := s.orgStore.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	return org, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	return s.orgStore.GetByID(ctx, orgID)
}

func (s *organizationService) List(ctx context.Context) ([]model.Organization, error) {
	return s.orgStore.List(ctx)
}

func (s *organizationService) Update(ctx context.Context, orgID int64, name *string) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		org.Name = *name
	}
	if err := s.orgStore.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("updating organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, orgID int64) error {
	return s.orgStore.Delete(ctx, orgID)
}

func (s *organizationService) ensureSlug(ctx context.Context, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := s.orgStore.GetBySlug(ctx, base); err != nil {
		if err == store.ErrNotFound {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := s.orgStore.GetBySlug(ctx, candidate)
		if err == store.ErrNotFound {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
