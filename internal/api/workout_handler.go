package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/service"
)

// WorkoutHandler serves workout composition and assignment endpoints.
type WorkoutHandler struct {
	workoutService    service.WorkoutService
	assignmentService service.AssignmentService
	logger            *zap.Logger
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(
	workoutService service.WorkoutService,
	assignmentService service.AssignmentService,
	logger *zap.Logger,
) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:    workoutService,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// --- DTOs ---

// CreateWorkoutRequest defines the expected JSON for creating a workout.
type CreateWorkoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	Description string `json:"description"`
}

// UpdateWorkoutRequest is a partial patch; absent fields are left unchanged.
type UpdateWorkoutRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Kind        *string `json:"kind"`
	Description *string `json:"description"`
}

// SlotRequest defines the expected JSON for creating or updating a slot.
type SlotRequest struct {
	ExerciseID  int64    `json:"idExercicio" binding:"required"`
	Position    int      `json:"position"`
	Sets        int      `json:"sets" binding:"required"`
	Reps        int      `json:"reps" binding:"required"`
	Load        *float64 `json:"load"`
	RestSeconds *int     `json:"restSeconds"`
	Notes       string   `json:"notes"`
}

// AssignWorkoutRequest defines the expected JSON for assigning a workout to
// a trainee.
type AssignWorkoutRequest struct {
	WorkoutID int64 `json:"idTreino" binding:"required"`
	TraineeID int64 `json:"idAluno" binding:"required"`
}

func (r SlotRequest) toInput() service.SlotInput {
	return service.SlotInput{
		ExerciseID:  r.ExerciseID,
		Position:    r.Position,
		Sets:        r.Sets,
		Reps:        r.Reps,
		Load:        r.Load,
		RestSeconds: r.RestSeconds,
		Notes:       r.Notes,
	}
}

// --- Handler Methods ---

// Create handles POST /workouts.
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), identity, service.CreateWorkoutInput{
		Name:        req.Name,
		Category:    domain.Category(req.Category),
		Kind:        domain.Kind(req.Kind),
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "idTreino": workout.ID})
}

// Get handles GET /workouts/:id.
func (h *WorkoutHandler) Get(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	details, err := h.workoutService.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"treino":     details.Workout,
		"exercicios": details.Slots,
	})
}

// List handles GET /workouts.
func (h *WorkoutHandler) List(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	workouts, err := h.workoutService.List(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "treinos": workouts})
}

// Update handles PUT /workouts/:id.
func (h *WorkoutHandler) Update(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.UpdateWorkoutInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		input.Category = &category
	}
	if req.Kind != nil {
		kind := domain.Kind(*req.Kind)
		input.Kind = &kind
	}

	workout, err := h.workoutService.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "treino": workout})
}

// Delete handles DELETE /workouts/:id. Every slot of the workout goes with
// it, atomically.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	identity, id, ok := h.identityAndID(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), identity, id); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddSlot handles POST /workouts/:id/slots.
func (h *WorkoutHandler) AddSlot(c *gin.Context) {
	identity, workoutID, ok := h.identityAndID(c)
	if !ok {
		return
	}
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	slot, err := h.workoutService.AddSlot(c.Request.Context(), identity, workoutID, req.toInput())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "slot": slot})
}

// UpdateSlot handles PUT /slots/:id.
func (h *WorkoutHandler) UpdateSlot(c *gin.Context) {
	identity, slotID, ok := h.identityAndID(c)
	if !ok {
		return
	}
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	slot, err := h.workoutService.UpdateSlot(c.Request.Context(), identity, slotID, req.toInput())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slot})
}

// RemoveSlot handles DELETE /slots/:id.
func (h *WorkoutHandler) RemoveSlot(c *gin.Context) {
	identity, slotID, ok := h.identityAndID(c)
	if !ok {
		return
	}
	if err := h.workoutService.RemoveSlot(c.Request.Context(), identity, slotID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Assign handles POST /workouts/assign (coach only).
func (h *WorkoutHandler) Assign(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	var req AssignWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	newID, err := h.assignmentService.Assign(c.Request.Context(), identity, req.WorkoutID, req.TraineeID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "idNovoTreino": newID})
}

// identityAndID pulls the caller identity and the numeric :id path param.
func (h *WorkoutHandler) identityAndID(c *gin.Context) (domain.Identity, int64, bool) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return domain.Identity{}, 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid id in path")
		return domain.Identity{}, 0, false
	}
	return identity, id, true
}
