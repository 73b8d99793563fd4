package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/progress"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
	todorepo "github.com/projectpulse/pm-backend/internal/todos/repository"
)

// TodoService handles todo business logic and the upward cascade: a todo
// status change re-derives the parent task's status, which in turn
// recomputes the project's progress.
type TodoService struct {
	repo  *todorepo.TodoRepository
	tasks *taskrepo.TaskRepository
	calc  *progress.Calculator
}

func New(repo *todorepo.TodoRepository, tasks *taskrepo.TaskRepository, calc *progress.Calculator) *TodoService {
	return &TodoService{repo: repo, tasks: tasks, calc: calc}
}

// Include selects which relations to hydrate on reads.
type Include struct {
	Task bool
}

func (s *TodoService) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	if t.Status == "" {
		t.Status = domain.StatusInProgress
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	taskID, err := domain.ParseID(t.TaskID)
	if err != nil {
		return nil, err
	}
	t.TaskID = taskID

	if _, err := s.tasks.GetByID(ctx, t.TaskID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("task %s: %w", t.TaskID, domain.ErrNotFound)
		}
		return nil, err
	}

	return s.repo.Create(ctx, t)
}

func (s *TodoService) List(ctx context.Context, inc Include) ([]domain.Todo, error) {
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

func (s *TodoService) Get(ctx context.Context, id string, inc Include) (*domain.Todo, error) {
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

func (s *TodoService) hydrate(ctx context.Context, t *domain.Todo, inc Include) error {
	if inc.Task {
		task, err := s.tasks.GetByID(ctx, t.TaskID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		t.Task = task
	}
	return nil
}

type TodoUpdate struct {
	Name   *string
	Status *domain.Status
}

// Update applies the change and, on a status change, re-derives the parent
// task's status and the project's progress before returning.
func (s *TodoService) Update(ctx context.Context, id string, upd TodoUpdate) (*domain.Todo, error) {
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
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if t.Status != prevStatus {
		if err := s.syncTaskStatus(ctx, t.TaskID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Delete removes a single todo. The parent task's status is left alone:
// only status updates drive the upward cascade.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	id, err := domain.ParseID(id)
	if err != nil {
		return err
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

// syncTaskStatus re-derives the parent task's status from its todo set: the
// task is complete exactly when it has todos and none are still in progress.
// A task with zero todos is never auto-completed here.
func (s *TodoService) syncTaskStatus(ctx context.Context, taskID string) error {
	total, incomplete, err := s.repo.CountByTask(ctx, taskID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	status := domain.StatusInProgress
	if incomplete == 0 {
		status = domain.StatusComplete
	}
	if _, err := s.tasks.SetStatus(ctx, taskID, status); err != nil {
		return err
	}

	return s.calc.Update(ctx, task.ProjectID)
}
