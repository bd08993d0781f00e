package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/service"
)

// respondServiceError maps a service-layer error onto the HTTP taxonomy.
// Validation and permission failures surface their message; store failures
// are logged with full context and leak nothing.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		abortWithError(c, http.StatusBadRequest, validation.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, "You do not have permission to access this resource")
	case errors.Is(err, service.ErrTraineeNotManaged):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTraineeNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTraineeNotRole),
		errors.Is(err, service.ErrSessionCompleted):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("internal error",
			zap.String("requestId", c.GetString(ContextRequestIDKey)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
