package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aradhik11/task-management-api/internal/config"
	"github.com/Aradhik11/task-management-api/internal/database"
	"github.com/Aradhik11/task-management-api/internal/logger"
	"github.com/Aradhik11/task-management-api/internal/routes"
)

func main() {
	// A missing .env is fine; configuration then comes from the process
	// environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.Environment)
	defer appLog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		appLog.Fatalw("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		appLog.Fatalw("failed to run migrations", "error", err)
	}

	r := routes.SetupRouter(db, cfg, appLog)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLog.Infow("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatalw("server shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	appLog.Info("server stopped")
}
