package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectpulse/pm-backend/internal/domain"
	"github.com/projectpulse/pm-backend/internal/progress"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
	taskrepo "github.com/projectpulse/pm-backend/internal/tasks/repository"
	memberrepo "github.com/projectpulse/pm-backend/internal/team/repository"
	todorepo "github.com/projectpulse/pm-backend/internal/todos/repository"
)

func setupTaskService(t *testing.T) (*TaskService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := New(
		taskrepo.New(db),
		projectrepo.New(db),
		memberrepo.New(db),
		todorepo.New(db),
		progress.NewCalculator(db),
	)
	return svc, mock
}

func expectProjectRow(mock sqlmock.Sqlmock, projectID, clientID string, now time.Time) {
	mock.ExpectQuery(`SELECT id, name, start_date`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "start_date", "end_date", "progress", "task_ids", "client_id", "created_at", "updated_at",
		}).AddRow(projectID, "Launch", now, now.AddDate(0, 3, 0), 0, []byte(`[]`), clientID, now, now))
}

func expectMemberRow(mock sqlmock.Sqlmock, memberID string, now time.Time) {
	mock.ExpectQuery(`SELECT id, name, role`).
		WithArgs(memberID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "role", "email", "created_at", "updated_at",
		}).AddRow(memberID, "Dana", "Backend Developer", "dana@example.com", now, now))
}

func expectTaskRow(mock sqlmock.Sqlmock, taskID, projectID, memberID string, status domain.Status, now time.Time) {
	mock.ExpectQuery(`SELECT id, name, status, project_id`).
		WithArgs(taskID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "status", "project_id", "assigned_member_id", "created_at", "updated_at",
		}).AddRow(taskID, "Build API", string(status), projectID, memberID, now, now))
}

func expectProgressUpdate(mock sqlmock.Sqlmock, projectID string, total, completed int64, pct int) {
	mock.ExpectQuery(`SELECT count`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count", "completed"}).AddRow(total, completed))
	mock.ExpectExec(`UPDATE projects`).
		WithArgs(projectID, pct).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestTaskService_Create(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()

	projectID := uuid.NewString()
	clientID := uuid.NewString()
	memberID := uuid.NewString()

	t.Run("creates and joins the project task list", func(t *testing.T) {
		expectProjectRow(mock, projectID, clientID, now)
		expectMemberRow(mock, memberID, now)
		mock.ExpectQuery(`INSERT INTO tasks`).
			WithArgs(sqlmock.AnyArg(), "Build API", "in progress", projectID, memberID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`UPDATE projects`).
			WithArgs(projectID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectProgressUpdate(mock, projectID, 1, 0, 0)

		task, err := svc.Create(context.Background(), &domain.Task{
			Name:             "Build API",
			ProjectID:        projectID,
			AssignedMemberID: memberID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, domain.StatusInProgress, task.Status)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a missing project", func(t *testing.T) {
		missing := uuid.NewString()
		mock.ExpectQuery(`SELECT id, name, start_date`).
			WithArgs(missing).
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Create(context.Background(), &domain.Task{
			Name:             "Build API",
			ProjectID:        missing,
			AssignedMemberID: memberID,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("rejects invalid input before any write", func(t *testing.T) {
		_, err := svc.Create(context.Background(), &domain.Task{})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()

	taskID := uuid.NewString()
	projectID := uuid.NewString()
	memberID := uuid.NewString()

	t.Run("completing a task force-completes its todos", func(t *testing.T) {
		expectTaskRow(mock, taskID, projectID, memberID, domain.StatusInProgress, now)
		mock.ExpectQuery(`UPDATE tasks`).
			WithArgs(taskID, "Build API", "complete", projectID, memberID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`UPDATE todos`).
			WithArgs(taskID, "complete").
			WillReturnResult(sqlmock.NewResult(0, 3))
		expectProgressUpdate(mock, projectID, 4, 2, 50)

		status := domain.StatusComplete
		task, err := svc.Update(context.Background(), taskID, TaskUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusComplete, task.Status)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rename alone skips the cascade", func(t *testing.T) {
		expectTaskRow(mock, taskID, projectID, memberID, domain.StatusInProgress, now)
		mock.ExpectQuery(`UPDATE tasks`).
			WithArgs(taskID, "Build API v2", "in progress", projectID, memberID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		name := "Build API v2"
		_, err := svc.Update(context.Background(), taskID, TaskUpdate{Name: &name})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskService_Delete(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()

	taskID := uuid.NewString()
	projectID := uuid.NewString()
	memberID := uuid.NewString()

	t.Run("removes todos and the project-list entry, then recomputes", func(t *testing.T) {
		expectTaskRow(mock, taskID, projectID, memberID, domain.StatusInProgress, now)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE projects`).
			WithArgs(projectID, taskID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM todos`).
			WithArgs(taskID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM tasks`).
			WithArgs(taskID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectProgressUpdate(mock, projectID, 3, 2, 67)

		require.NoError(t, svc.Delete(context.Background(), taskID))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failing step rolls the whole cascade back", func(t *testing.T) {
		expectTaskRow(mock, taskID, projectID, memberID, domain.StatusInProgress, now)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE projects`).
			WithArgs(projectID, taskID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM todos`).
			WithArgs(taskID).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := svc.Delete(context.Background(), taskID)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
