package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/progress"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
	memberrepo "github.com/projectpulse/pm-backend/internal/team/repository"
	todorepo "github.com/projectpulse/pm-backend/internal/todos/repository"
)

// TaskService handles task business logic and the cascades a task mutation
// triggers: project task-list membership, the todo forward cascade on
// completion, and progress recalculation.
type TaskService struct {
	repo     *taskrepo.TaskRepository
	projects *projectrepo.ProjectRepository
	members  *memberrepo.MemberRepository
	todos    *todorepo.TodoRepository
	calc     *progress.Calculator
}

func New(repo *taskrepo.TaskRepository, projects *projectrepo.ProjectRepository,
	members *memberrepo.MemberRepository, todos *todorepo.TodoRepository,
	calc *progress.Calculator) *TaskService {
	return &TaskService{repo: repo, projects: projects, members: members, todos: todos, calc: calc}
}

// Include selects which relations to hydrate on reads.
type Include struct {
	Project bool
	Member  bool
}

// Create validates both references, inserts the task, appends it to the
// owning project's task list, and recomputes that project's progress.
func (s *TaskService) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if t.Status == "" {
		t.Status = domain.StatusInProgress
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	projectID, err := domain.ParseID(t.ProjectID)
	if err != nil {
		return nil, err
	}
	t.ProjectID = projectID

	memberID, err := domain.ParseID(t.AssignedMemberID)
	if err != nil {
		return nil, err
	}
	t.AssignedMemberID = memberID

	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", t.ProjectID, domain.ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.members.GetByID(ctx, t.AssignedMemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("team member %s: %w", t.AssignedMemberID, domain.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := s.projects.AppendTaskID(ctx, t.ProjectID, t.ID); err != nil {
		return nil, err
	}
	if err := s.calc.Update(ctx, t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, inc Include) ([]domain.Task, error) {
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

func (s *TaskService) Get(ctx context.Context, id string, inc Include) (*domain.Task, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, t, inc); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) hydrate(ctx context.Context, t *domain.Task, inc Include) error {
	if inc.Project {
		p, err := s.projects.GetByID(ctx, t.ProjectID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		t.Project = p
	}
	if inc.Member {
		m, err := s.members.GetByID(ctx, t.AssignedMemberID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		t.AssignedMember = m
	}
	return nil
}

// TaskUpdate is partial. Re-parenting a task to another project is not
// supported; delete and recreate instead.
type TaskUpdate struct {
	Name             *string
	Status           *domain.Status
	AssignedMemberID *string
}

// Update applies the change and, when the status changed, runs the forward
// cascade: completing a task force-completes its todos, and any status change
// recomputes the owning project's progress before returning.
func (s *TaskService) Update(ctx context.Context, id string, upd TaskUpdate) (*domain.Task, error) {
	id, err := domain.ParseID(id)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := t.Status
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.AssignedMemberID != nil {
		memberID, err := domain.ParseID(*upd.AssignedMemberID)
		if err != nil {
			return nil, err
		}
		if _, err := s.members.GetByID(ctx, memberID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("team member %s: %w", memberID, domain.ErrNotFound)
			}
			return nil, err
		}
		t.AssignedMemberID = memberID
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if t.Status != prevStatus {
		if t.Status == domain.StatusComplete {
			if _, err := s.todos.SetStatusByTask(ctx, t.ID, domain.StatusComplete); err != nil {
				return nil, err
			}
		}
		if err := s.calc.Update(ctx, t.ProjectID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Delete removes the task, its todos, and its project-list entry in one
// transaction, then recomputes the project's progress.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.DeleteCascade(ctx, t.ID, t.ProjectID); err != nil {
		return err
	}
	return s.calc.Update(ctx, t.ProjectID)
}
