package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientrepo "github.com/projectpulse/pm-backend/internal/clients/repository"
	"github.com/projectpulse/pm-backend/internal/domain"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
)

func setupClientService(t *testing.T) (*ClientService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := New(clientrepo.New(db), projectrepo.New(db))
	return svc, mock
}

func TestClientService_Create(t *testing.T) {
	now := time.Now()

	t.Run("creates a valid client", func(t *testing.T) {
		svc, mock := setupClientService(t)

		mock.ExpectQuery(`INSERT INTO clients`).
			WithArgs(sqlmock.AnyArg(), "Acme", "1 Main St").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		c, err := svc.Create(context.Background(), &domain.Client{Name: "Acme", Address: "1 Main St"})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid input before any write", func(t *testing.T) {
		svc, mock := setupClientService(t)

		_, err := svc.Create(context.Background(), &domain.Client{})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientService_Update(t *testing.T) {
	now := time.Now()

	t.Run("partial update keeps the untouched field", func(t *testing.T) {
		svc, mock := setupClientService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT id, name, address`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "address", "created_at", "updated_at",
			}).AddRow(id, "Acme", "1 Main St", now, now))
		mock.ExpectQuery(`UPDATE clients`).
			WithArgs(id, "Acme Corp", "1 Main St").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		name := "Acme Corp"
		c, err := svc.Update(context.Background(), id, ClientUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", c.Name)
		assert.Equal(t, "1 Main St", c.Address)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClientService_Delete(t *testing.T) {
	t.Run("blocked while projects reference the client", func(t *testing.T) {
		svc, mock := setupClientService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT count\(\*\) FROM projects`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		err := svc.Delete(context.Background(), id)
		require.Error(t, err)
		assert.True(t, domain.IsIntegrity(err))
		assert.Contains(t, err.Error(), "Delete projects first")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes once no projects remain", func(t *testing.T) {
		svc, mock := setupClientService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT count\(\*\) FROM projects`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM clients`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Delete(context.Background(), id))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown client reports not found", func(t *testing.T) {
		svc, mock := setupClientService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT count\(\*\) FROM projects`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM clients`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := svc.Delete(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects a malformed id without touching the store", func(t *testing.T) {
		svc, mock := setupClientService(t)

		err := svc.Delete(context.Background(), "nope")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
