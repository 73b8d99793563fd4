package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/projectpulse/pm-backend/config"
	"github.com/projectpulse/pm-backend/internal/bootstrap"
	"github.com/projectpulse/pm-backend/internal/db"
	"github.com/projectpulse/pm-backend/internal/progress"
	cronjob "github.com/projectpulse/pm-backend/internal/progress/cron"
	projectrepo "github.com/projectpulse/pm-backend/internal/projects/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	database, err := db.Open(ctx, db.Options{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database.SQL); err != nil {
		log.Fatalf("schema: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
	}

	if cfg.Progress.SweepSpec != "" {
		reconciler := cronjob.NewReconciler(
			projectrepo.New(database.SQL),
			progress.NewCalculator(database.SQL),
			cfg.Progress.SweepSpec,
		)
		reconciler.Start()
		defer reconciler.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "pm-backend",
		Version:     cfg.App.Version,
		DB:          database,
		Redis:       rdb,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
