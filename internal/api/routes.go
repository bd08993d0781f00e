package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
	"fitcoach/workout-api/internal/service"
)

// SetupRoutes wires handlers onto the router. Every route except /ping
// requires a resolved identity.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger *zap.Logger,
	workoutService service.WorkoutService,
	assignmentService service.AssignmentService,
	sessionService service.SessionService,
	exerciseRepo repository.ExerciseRepository,
) {
	workoutHandler := NewWorkoutHandler(workoutService, assignmentService, logger)
	sessionHandler := NewSessionHandler(sessionService, logger)
	exerciseHandler := NewExerciseHandler(exerciseRepo, logger)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Workout Composition ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.GET("", workoutHandler.List)
			workoutGroup.GET("/:id", workoutHandler.Get)
			workoutGroup.PUT("/:id", workoutHandler.Update)
			workoutGroup.DELETE("/:id", workoutHandler.Delete)
			workoutGroup.POST("/:id/slots", workoutHandler.AddSlot)

			// Assignment is a coach-only operation.
			workoutGroup.POST("/assign", RoleMiddleware(domain.RoleCoach), workoutHandler.Assign)
		}

		slotGroup := protected.Group("/slots")
		{
			slotGroup.PUT("/:id", workoutHandler.UpdateSlot)
			slotGroup.DELETE("/:id", workoutHandler.RemoveSlot)
		}

		// --- Training Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.Start)
			sessionGroup.GET("/history", sessionHandler.History)
			sessionGroup.PUT("/:id/finalize", sessionHandler.Finalize)
			sessionGroup.GET("/:id/resume", sessionHandler.Resume)
		}

		// --- Exercise Catalog (read-only) ---
		protected.GET("/exercises", exerciseHandler.List)
	}
}
