// Command migrate applies or rolls back the embedded SQL migrations without
// starting the server.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"fitcoach/workout-api/internal/config"
	"fitcoach/workout-api/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	ctx := context.Background()
	if *down {
		if err := migrate.Down(ctx, cfg.Database.DSN); err != nil {
			logger.Fatal("migrate down", zap.Error(err))
		}
		logger.Info("rolled back most recent migration")
		return
	}
	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}
	logger.Info("migrations applied")
}
