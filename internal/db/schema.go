package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Referential rules (cascades, delete blocking) are enforced in the service
// layer, so the tables carry no foreign key constraints on purpose.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         text PRIMARY KEY,
		name       text NOT NULL,
		address    text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id         text PRIMARY KEY,
		name       text NOT NULL,
		role       text NOT NULL,
		email      text NOT NULL UNIQUE,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id         text PRIMARY KEY,
		name       text NOT NULL,
		start_date timestamptz NOT NULL,
		end_date   timestamptz NOT NULL,
		progress   integer NOT NULL DEFAULT 0,
		task_ids   jsonb NOT NULL DEFAULT '[]',
		client_id  text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id                 text PRIMARY KEY,
		name               text NOT NULL,
		status             text NOT NULL DEFAULT 'in progress',
		project_id         text NOT NULL,
		assigned_member_id text NOT NULL,
		created_at         timestamptz NOT NULL DEFAULT now(),
		updated_at         timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS todos (
		id         text PRIMARY KEY,
		name       text NOT NULL,
		status     text NOT NULL DEFAULT 'in progress',
		task_id    text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_member ON tasks (assigned_member_id);`,
	`CREATE INDEX IF NOT EXISTS idx_todos_task ON todos (task_id);`,
}

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
