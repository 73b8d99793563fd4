// Package dashboard aggregates entity counts and progress figures for the
// overview screen.
package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "pm:dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

type Stats struct {
	Clients         int64     `json:"clients"`
	Projects        int64     `json:"projects"`
	Tasks           int64     `json:"tasks"`
	TasksCompleted  int64     `json:"tasks_completed"`
	Todos           int64     `json:"todos"`
	TeamMembers     int64     `json:"team_members"`
	AverageProgress float64   `json:"average_progress"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Service computes dashboard stats, serving from Redis when a cache client
// is configured. Cache misses and cache write failures fall back to the
// database silently; freshness is bounded by the TTL only.
type Service struct {
	db    *sql.DB
	cache *redis.Client
}

func NewService(db *sql.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var st Stats
			if err := json.Unmarshal([]byte(data), &st); err == nil {
				return &st, nil
			}
		} else if err != redis.Nil {
			log.Printf("[dashboard] cache read failed: %v", err)
		}
	}

	st, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(st); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				log.Printf("[dashboard] cache write failed: %v", err)
			}
		}
	}
	return st, nil
}

func (s *Service) compute(ctx context.Context) (*Stats, error) {
	const q = `
SELECT
	(SELECT count(*) FROM clients),
	(SELECT count(*) FROM projects),
	(SELECT count(*) FROM tasks),
	(SELECT count(*) FROM tasks WHERE status = 'complete'),
	(SELECT count(*) FROM todos),
	(SELECT count(*) FROM team_members),
	(SELECT COALESCE(avg(progress), 0) FROM projects);
`
	var st Stats
	err := s.db.QueryRowContext(ctx, q).Scan(
		&st.Clients, &st.Projects, &st.Tasks, &st.TasksCompleted,
		&st.Todos, &st.TeamMembers, &st.AverageProgress)
	if err != nil {
		return nil, err
	}
	st.GeneratedAt = time.Now().UTC()
	return &st, nil
}
