// Package progress derives a project's completion percentage from its task set.
package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
)

// Calculator recomputes project progress from scratch on every call, so a
// stored value is always internally consistent even when concurrent updates
// race on the final write.
type Calculator struct {
	db *sql.DB
}

func NewCalculator(db *sql.DB) *Calculator {
	return &Calculator{db: db}
}

// Calculate returns round(100 * completed / total) over the project's current
// tasks, or 0 when the project has none. Read-only; safe to call concurrently.
func (c *Calculator) Calculate(ctx context.Context, projectID string) (int, error) {
	var total, completed int64
	const q = `
SELECT count(*), count(*) FILTER (WHERE status = 'complete')
FROM tasks
WHERE project_id = $1;
`
	if err := c.db.QueryRowContext(ctx, q, projectID).Scan(&total, &completed); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return Percentage(completed, total), nil
}

// Update recomputes the project's progress and persists it. A project that no
// longer exists is a no-op: recalculation is a side effect of some other
// mutation, and the primary operation already reported existence errors.
func (c *Calculator) Update(ctx context.Context, projectID string) error {
	pct, err := c.Calculate(ctx, projectID)
	if err != nil {
		return err
	}

	const q = `
UPDATE projects
SET progress = $2, updated_at = now()
WHERE id = $1;
`
	res, err := c.db.ExecContext(ctx, q, projectID, pct)
	if err != nil {
		return fmt.Errorf("store progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		log.Printf("[progress] project %s gone, skipping update", projectID)
		return nil
	}

	log.Printf("[progress] project %s progress=%d%%", projectID, pct)
	return nil
}

// Percentage rounds half-up to the nearest integer; 0 for an empty task set.
func Percentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
