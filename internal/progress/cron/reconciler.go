package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/projectpulse/pm-backend/internal/progress"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
)

// Reconciler periodically recomputes every project's progress. Concurrent
// task updates race on the stored percentage (last write wins); the sweep
// repairs any drift that leaves behind.
type Reconciler struct {
	projects *projectrepo.ProjectRepository
	calc     *progress.Calculator
	spec     string
	c        *cron.Cron
}

func NewReconciler(projects *projectrepo.ProjectRepository, calc *progress.Calculator, spec string) *Reconciler {
	return &Reconciler{projects: projects, calc: calc, spec: spec}
}

// Start schedules the sweep. Invalid specs are logged and the sweep stays off.
func (r *Reconciler) Start() {
	c := cron.New()

	if _, err := c.AddFunc(r.spec, r.sweep); err != nil {
		log.Printf("[cron] failed to schedule progress sweep: %v", err)
		return
	}

	log.Printf("[cron] progress sweep scheduled (%s)", r.spec)
	c.Start()
	r.c = c
}

func (r *Reconciler) Stop() {
	if r.c != nil {
		r.c.Stop()
	}
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ids, err := r.projects.ListIDs(ctx)
	if err != nil {
		log.Printf("[cron] progress sweep: list projects: %v", err)
		return
	}

	var failed int
	for _, id := range ids {
		if err := r.calc.Update(ctx, id); err != nil {
			failed++
			log.Printf("[cron] progress sweep: project %s: %v", id, err)
		}
	}
	log.Printf("[cron] progress sweep done: %d projects, %d failed", len(ids), failed)
}
