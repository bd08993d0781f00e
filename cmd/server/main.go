package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/api"
	"fitcoach/workout-api/internal/config"
	"fitcoach/workout-api/internal/migrate"
	"fitcoach/workout-api/internal/repository/postgres"
	"fitcoach/workout-api/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("missing jwt secret (JWT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Migrations ---
	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// --- Database Connection ---
	db, err := postgres.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("could not connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connection established")

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(db)
	exerciseRepo := postgres.NewExerciseRepo(db)
	workoutRepo := postgres.NewWorkoutRepo(db)
	slotRepo := postgres.NewSlotRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	// --- Services ---
	guard := service.NewPermissionGuard()
	workoutService := service.NewWorkoutService(workoutRepo, slotRepo, exerciseRepo, guard)
	assignmentService := service.NewAssignmentService(workoutRepo, userRepo, guard)
	sessionService := service.NewSessionService(sessionRepo, workoutRepo, slotRepo, guard)

	// --- HTTP ---
	router := gin.New()
	router.Use(api.RequestLogger(logger), gin.Recovery())
	api.SetupRoutes(router, cfg.JWT.Secret, logger, workoutService, assignmentService, sessionService, exerciseRepo)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exiting")
}
