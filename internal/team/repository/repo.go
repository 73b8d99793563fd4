package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// MemberRepository provides persistence operations for team members.
type MemberRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a new team member. A duplicate email maps to
// domain.ErrConflict via the unique index on team_members.email.
func (r *MemberRepository) Create(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	m.ID = uuid.NewString()

	const q = `
INSERT INTO team_members (id, name, role, email)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, m.ID, m.Name, string(m.Role), m.Email).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		// unique violation on email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return m, nil
}

// List returns all team members, newest first.
func (r *MemberRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	const q = `
SELECT id, name, role, email, created_at, updated_at
FROM team_members
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TeamMember, 0, 16)
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	const q = `
SELECT id, name, role, email, created_at, updated_at
FROM team_members
WHERE id = $1;
`
	var m domain.TeamMember
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Update(ctx context.Context, m *domain.TeamMember) (*domain.TeamMember, error) {
	const q = `
UPDATE team_members
SET name = $2, role = $3, email = $4, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, m.ID, m.Name, string(m.Role), m.Email).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return m, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM team_members WHERE id = $1;`
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
