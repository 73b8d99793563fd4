package service

import (
	"context"

	clientrepo "github.com/projectpulse/pm-backend/internal/clients/repository"
	"github.com/projectpulse/pm-backend/internal/domain"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
)

// ClientService handles client business logic, including the delete block
// while projects still reference the client.
type ClientService struct {
	repo     *clientrepo.ClientRepository
	projects *projectrepo.ProjectRepository
}

func New(repo *clientrepo.ClientRepository, projects *projectrepo.ProjectRepository) *ClientService {
	return &ClientService{repo: repo, projects: projects}
}

func (s *ClientService) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Update is partial: nil fields keep their stored value.
type ClientUpdate struct {
	Name    *string
	Address *string
}

func (s *ClientService) Update(ctx context.Context, id string, upd ClientUpdate) (*domain.Client, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

// Delete refuses while the client still owns projects.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	n, err := s.projects.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewIntegrityError(
			"Cannot delete client with associated projects. Delete projects first.")
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
