package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// TaskRepository provides persistence operations for tasks.
type TaskRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	t.ID = uuid.NewString()

	const q = `
INSERT INTO tasks (id, name, status, project_id, assigned_member_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.Name, string(t.Status), t.ProjectID, t.AssignedMemberID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

const selectTask = `
SELECT id, name, status, project_id, assigned_member_id, created_at, updated_at
FROM tasks
`

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.ProjectID,
			&t.AssignedMemberID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// List returns all tasks, newest first.
func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+`ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// ListByProject returns the project's tasks in creation order.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTask+`WHERE project_id = $1 ORDER BY created_at;`, projectID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRowContext(ctx, selectTask+`WHERE id = $1;`, id).
		Scan(&t.ID, &t.Name, &t.Status, &t.ProjectID,
			&t.AssignedMemberID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	const q = `
UPDATE tasks
SET name = $2, status = $3, project_id = $4, assigned_member_id = $5, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.Name, string(t.Status), t.ProjectID, t.AssignedMemberID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// SetStatus updates only the completion state.
func (r *TaskRepository) SetStatus(ctx context.Context, id string, status domain.Status) (bool, error) {
	const q = `
UPDATE tasks
SET status = $2, updated_at = now()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, string(status))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByMember reports how many tasks reference the given team member.
func (r *TaskRepository) CountByMember(ctx context.Context, memberID string) (int64, error) {
	const q = `SELECT count(*) FROM tasks WHERE assigned_member_id = $1;`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, memberID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteCascade removes the task, its todos, and its entry in the owning
// project's task list, in one transaction.
func (r *TaskRepository) DeleteCascade(ctx context.Context, taskID, projectID string) (todosDeleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const pullTask = `
UPDATE projects
SET task_ids = (
	SELECT COALESCE(jsonb_agg(e), '[]'::jsonb)
	FROM jsonb_array_elements_text(task_ids) AS e
	WHERE e <> $2
), updated_at = now()
WHERE id = $1;
`
	if _, err = tx.ExecContext(ctx, pullTask, projectID, taskID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE task_id = $1;`, taskID)
	if err != nil {
		return 0, err
	}
	todosDeleted, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1;`, taskID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = domain.ErrNotFound
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return todosDeleted, nil
}
