package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"clients", "projects", "tasks", "tasks_completed", "todos", "team_members", "avg",
	}).AddRow(3, 5, 12, 4, 30, 6, 42.5)
}

func TestService_Stats(t *testing.T) {
	t.Run("works without a cache", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT`).WillReturnRows(statsRows())

		svc := NewService(db, nil)
		st, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), st.Projects)
		assert.Equal(t, int64(4), st.TasksCompleted)
		assert.InDelta(t, 42.5, st.AverageProgress, 0.001)
		assert.False(t, st.GeneratedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second call within the TTL is served from the cache", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mr := miniredis.RunT(t)
		cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer cache.Close()

		// only one database round-trip expected
		mock.ExpectQuery(`SELECT`).WillReturnRows(statsRows())

		svc := NewService(db, cache)

		first, err := svc.Stats(context.Background())
		require.NoError(t, err)

		second, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first.Clients, second.Clients)
		assert.Equal(t, first.AverageProgress, second.AverageProgress)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired cache entry forces a recompute", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mr := miniredis.RunT(t)
		cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer cache.Close()

		mock.ExpectQuery(`SELECT`).WillReturnRows(statsRows())
		mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows([]string{
			"clients", "projects", "tasks", "tasks_completed", "todos", "team_members", "avg",
		}).AddRow(3, 6, 12, 4, 30, 6, 40.0))

		svc := NewService(db, cache)

		_, err = svc.Stats(context.Background())
		require.NoError(t, err)

		mr.FastForward(statsCacheTTL + time.Second)

		st, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(6), st.Projects)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
