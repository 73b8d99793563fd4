package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// TodoRepository provides persistence operations for todos.
type TodoRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	t.ID = uuid.NewString()

	const q = `
INSERT INTO todos (id, name, status, task_id)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.Name, string(t.Status), t.TaskID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

const selectTodo = `
SELECT id, name, status, task_id, created_at, updated_at
FROM todos
`

func scanTodos(rows *sql.Rows) ([]domain.Todo, error) {
	defer rows.Close()

	out := make([]domain.Todo, 0, 16)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.TaskID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// List returns all todos, newest first.
func (r *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodo+`ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	return scanTodos(rows)
}

// ListByTask returns the task's todos in creation order.
func (r *TodoRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodo+`WHERE task_id = $1 ORDER BY created_at;`, taskID)
	if err != nil {
		return nil, err
	}
	return scanTodos(rows)
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.QueryRowContext(ctx, selectTodo+`WHERE id = $1;`, id).
		Scan(&t.ID, &t.Name, &t.Status, &t.TaskID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	const q = `
UPDATE todos
SET name = $2, status = $3, task_id = $4, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, t.ID, t.Name, string(t.Status), t.TaskID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM todos WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetStatusByTask force-sets every todo under the task to the given status.
// Used by the task-complete forward cascade.
func (r *TodoRepository) SetStatusByTask(ctx context.Context, taskID string, status domain.Status) (int64, error) {
	const q = `
UPDATE todos
SET status = $2, updated_at = now()
WHERE task_id = $1 AND status <> $2;
`
	res, err := r.db.ExecContext(ctx, q, taskID, string(status))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountByTask reports the todo totals the todo→task status rule needs.
func (r *TodoRepository) CountByTask(ctx context.Context, taskID string) (total, incomplete int64, err error) {
	const q = `
SELECT count(*), count(*) FILTER (WHERE status = 'in progress')
FROM todos
WHERE task_id = $1;
`
	if err := r.db.QueryRowContext(ctx, q, taskID).Scan(&total, &incomplete); err != nil {
		return 0, 0, err
	}
	return total, incomplete, nil
}
