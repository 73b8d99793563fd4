package service

import (
	"context"
	"strings"

	"github.com/projectpulse/pm-backend/internal/domain"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
	memberrepo "github.com/projectpulse/pm-backend/internal/team/repository"
)

// MemberService handles team member business logic, including the delete
// block while tasks still reference the member.
type MemberService struct {
	repo  *memberrepo.MemberRepository
	tasks *taskrepo.TaskRepository
}

func New(repo *memberrepo.MemberRepository, tasks *taskrepo.TaskRepository) *MemberService {
	return &MemberService{repo: repo, tasks: tasks}
}

func (s *MemberService) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, m)
}

func (s *MemberService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *MemberService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

type MemberUpdate struct {
	Name  *string
	Role  *domain.Role
	Email *string
}

func (s *MemberService) Update(ctx context.Context, id string, upd MemberUpdate) (*domain.TeamMember, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		m.Name = *upd.Name
	}
	if upd.Role != nil {
		m.Role = *upd.Role
	}
	if upd.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, m)
}

// Delete refuses while tasks are still assigned to the member.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	n, err := s.tasks.CountByMember(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewIntegrityError(
			"Cannot delete team member assigned to tasks. Reassign tasks first.")
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
