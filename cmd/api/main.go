package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-board-api/internal/config"
	jwtinfra "github.com/go-board-api/internal/infrastructure/jwt"
	"github.com/go-board-api/internal/infrastructure/postgres"
	"github.com/go-board-api/internal/infrastructure/smtp"
	transporthttp "github.com/go-board-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if cfg.JWTSecret == config.DevJWTSecret {
		log.Println("WARN: JWT_SECRET not set, using the development default — do not run this in production")
	}

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	deps := &transporthttp.Deps{
		UserRepo:    postgres.NewUserRepo(pool),
		PostRepo:    postgres.NewPostRepo(pool),
		Mailer:      smtp.NewMailer(cfg),
		JWTProvider: jwtinfra.NewProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
