package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientrepo "github.com/projectpulse/pm-backend/internal/clients/repository"
	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/progress"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
)

// ProjectService handles project business logic: reference checks on create,
// the atomic delete cascade, and the recalculate-progress action.
type ProjectService struct {
	repo    *projectrepo.ProjectRepository
	clients *clientrepo.ClientRepository
	tasks   *taskrepo.TaskRepository
	calc    *progress.Calculator
}

func New(repo *projectrepo.ProjectRepository, clients *clientrepo.ClientRepository,
	tasks *taskrepo.TaskRepository, calc *progress.Calculator) *ProjectService {
	return &ProjectService{repo: repo, clients: clients, tasks: tasks, calc: calc}
}

// Include selects which relations to hydrate on reads.
type Include struct {
	Client bool
	Tasks  bool
}

// Create validates the project and its client reference. Progress always
// starts at 0 regardless of input.
func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	p.Progress = 0
	if err := p.Validate(); err != nil {
		return nil, err
	}

	clientID, err := domain.ParseID(p.ClientID)
	if err != nil {
		return nil, err
	}
	p.ClientID = clientID

	if _, err := s.clients.GetByID(ctx, p.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", p.ClientID, domain.ErrNotFound)
		}
		return nil, err
	}

	return s.repo.Create(ctx, p)
}

func (s *ProjectService) List(ctx context.Context, inc Include) ([]domain.Project, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.hydrate(ctx, &out[i], inc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id string, inc Include) (*domain.Project, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, p, inc); err != nil {
		return nil, err
	}
	return p, nil
}

// hydrate attaches requested relations. A client that vanished between reads
// is simply left out rather than failing the whole response.
func (s *ProjectService) hydrate(ctx context.Context, p *domain.Project, inc Include) error {
	if inc.Client {
		c, err := s.clients.GetByID(ctx, p.ClientID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		p.Client = c
	}
	if inc.Tasks {
		ts, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		p.Tasks = ts
	}
	return nil
}

// ProjectUpdate is partial. Progress is deliberately absent: it is derived
// state and only the calculator writes it.
type ProjectUpdate struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	ClientID  *string
}

func (s *ProjectService) Update(ctx context.Context, id string, upd ProjectUpdate) (*domain.Project, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		p.EndDate = *upd.EndDate
	}
	if upd.ClientID != nil {
		clientID, err := domain.ParseID(*upd.ClientID)
		if err != nil {
			return nil, err
		}
		if _, err := s.clients.GetByID(ctx, clientID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("client %s: %w", clientID, domain.ErrNotFound)
			}
			return nil, err
		}
		p.ClientID = clientID
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, p)
}

// RecalculateProgress re-derives the stored percentage and returns the fresh
// record. Unlike the implicit recalculations, a missing project is an error
// here because it is the primary operation.
func (s *ProjectService) RecalculateProgress(ctx context.Context, id string) (*domain.Project, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.calc.Update(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteResult reports what the cascade removed.
type DeleteResult struct {
	TasksDeleted int64 `json:"tasks_deleted"`
	TodosDeleted int64 `json:"todos_deleted"`
}

// Delete removes the project with all its tasks and todos, all-or-nothing.
func (s *ProjectService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	tasksDeleted, todosDeleted, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeleteResult{TasksDeleted: tasksDeleted, TodosDeleted: todosDeleted}, nil
}
