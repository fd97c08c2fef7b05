// Command sweeper runs the expired-verification sweep once and exits. It is
// meant to be invoked externally (cron or a scheduled job); the API process
// never schedules it itself.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-board-api/internal/config"
	"github.com/go-board-api/internal/infrastructure/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	n, err := postgres.NewUserRepo(pool).SweepExpiredVerifications(ctx)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	log.Printf("cleared %d expired verification token(s)", n)
}
