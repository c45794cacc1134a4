package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/studyplan-dev/study-planner-api/internal/repository"
	"github.com/studyplan-dev/study-planner-api/pkg/config"
	"github.com/studyplan-dev/study-planner-api/pkg/database"
)

// Deletes revoked and expired sessions. Intended to run from cron; exits
// non-zero when the sweep fails so the scheduler can alert.
func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Sweep timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sessions := repository.NewSessionRepository(db)
	removed, err := sessions.DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	log.Printf("removed %d expired sessions", removed)
}
