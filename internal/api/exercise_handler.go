package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// ExerciseHandler serves the read-only exercise catalog so clients can pick
// exercises when composing workouts.
type ExerciseHandler struct {
	exerciseRepo repository.ExerciseRepository
	logger       *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseRepo repository.ExerciseRepository, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo, logger: logger}
}

// List handles GET /exercises.
func (h *ExerciseHandler) List(c *gin.Context) {
	exercises, err := h.exerciseRepo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "exercicios": exercises})
}
