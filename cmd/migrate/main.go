package main

import (
	"context"
	"log"
	"time"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	defer migrator.Close()

	applied, err := migrator.Up(ctx)
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Int("applied", applied), zap.Error(err))
	}
	l.Info("Database is up to date", zap.String("driver", cfg.DB.Driver), zap.Int("applied", applied))
}
