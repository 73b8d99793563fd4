package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// ProjectRepository provides persistence operations for projects, including
// the task-id membership list and the atomic delete cascade.
type ProjectRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanTaskIDs(raw []byte, p *domain.Project) error {
	if len(raw) == 0 {
		p.TaskIDs = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, &p.TaskIDs); err != nil {
		return fmt.Errorf("decode task_ids: %w", err)
	}
	if p.TaskIDs == nil {
		p.TaskIDs = []string{}
	}
	return nil
}

// Create inserts a new project. Progress starts at 0 and the task list empty;
// both are owned by the cascade/progress logic from here on.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	p.ID = uuid.NewString()
	p.Progress = 0
	p.TaskIDs = []string{}

	const q = `
INSERT INTO projects (id, name, start_date, end_date, progress, task_ids, client_id)
VALUES ($1, $2, $3, $4, 0, '[]', $5)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.StartDate, p.EndDate, p.ClientID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, name, start_date, end_date, progress, task_ids, client_id, created_at, updated_at
FROM projects
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var (
			p   domain.Project
			raw []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Progress,
			&raw, &p.ClientID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := scanTaskIDs(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
SELECT id, name, start_date, end_date, progress, task_ids, client_id, created_at, updated_at
FROM projects
WHERE id = $1;
`
	var (
		p   domain.Project
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.Progress,
			&raw, &p.ClientID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := scanTaskIDs(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update persists user-editable fields. Progress and the task list are
// deliberately not touched here.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
UPDATE projects
SET name = $2, start_date = $3, end_date = $4, client_id = $5, updated_at = now()
WHERE id = $1
RETURNING progress, task_ids, created_at, updated_at;
`
	var raw []byte
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.StartDate, p.EndDate, p.ClientID).
		Scan(&p.Progress, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := scanTaskIDs(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProgress stores a recomputed progress value. Reports whether the
// project still existed.
func (r *ProjectRepository) SetProgress(ctx context.Context, id string, progress int) (bool, error) {
	const q = `
UPDATE projects
SET progress = $2, updated_at = now()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, progress)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AppendTaskID adds a task id to the end of the project's task list.
func (r *ProjectRepository) AppendTaskID(ctx context.Context, projectID, taskID string) error {
	const q = `
UPDATE projects
SET task_ids = task_ids || to_jsonb($2::text), updated_at = now()
WHERE id = $1;
`
	_, err := r.db.ExecContext(ctx, q, projectID, taskID)
	return err
}

// CountByClient reports how many projects reference the given client.
func (r *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	const q = `SELECT count(*) FROM projects WHERE client_id = $1;`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, clientID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListIDs returns every project id, for the reconciliation sweep.
func (r *ProjectRepository) ListIDs(ctx context.Context) ([]string, error) {
	const q = `SELECT id FROM projects;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteCascade removes the project together with its tasks and their todos
// in a single transaction. Either everything goes or nothing does.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id string) (tasksDeleted, todosDeleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM todos WHERE task_id IN (SELECT id FROM tasks WHERE project_id = $1);`, id)
	if err != nil {
		return 0, 0, err
	}
	todosDeleted, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1;`, id)
	if err != nil {
		return 0, 0, err
	}
	tasksDeleted, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return 0, 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = domain.ErrNotFound
		return 0, 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}
	return tasksDeleted, todosDeleted, nil
}
