package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/projectpulse/pm-backend/internal/domain"
)

// ClientRepository provides persistence operations for clients.
type ClientRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client and fills in the store-assigned fields.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = uuid.NewString()

	const q = `
INSERT INTO clients (id, name, address)
VALUES ($1, $2, $3)
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Address).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all clients, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const q = `
SELECT id, name, address, created_at, updated_at
FROM clients
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const q = `
SELECT id, name, address, created_at, updated_at
FROM clients
WHERE id = $1;
`
	var c domain.Client
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update persists name/address changes.
func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	const q = `
UPDATE clients
SET name = $2, address = $3, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Address).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM clients WHERE id = $1;`
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
