package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/service"
)

// SessionHandler serves training session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
	logger         *zap.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, logger: logger}
}

// --- DTOs ---

// StartSessionRequest defines the expected JSON for starting a session.
type StartSessionRequest struct {
	WorkoutID int64 `json:"idTreino" binding:"required"`
}

// FinalizeSessionRequest carries the whole final progress snapshot. Clients
// always re-supply the full snapshot; there is no partial update.
type FinalizeSessionRequest struct {
	Progress        domain.Progress `json:"progresso"`
	DurationSeconds int             `json:"duracao"`
	Notes           string          `json:"notas"`
}

// --- Handler Methods ---

// Start handles POST /sessions.
func (h *SessionHandler) Start(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := h.sessionService.Start(c.Request.Context(), identity, req.WorkoutID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "idSessao": session.ID})
}

// Finalize handles PUT /sessions/:id/finalize.
func (h *SessionHandler) Finalize(c *gin.Context) {
	identity, sessionID, ok := h.identityAndID(c)
	if !ok {
		return
	}
	var req FinalizeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := h.sessionService.Finalize(c.Request.Context(), identity, sessionID, service.FinalizeInput{
		Progress:        req.Progress,
		DurationSeconds: req.DurationSeconds,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessao": session})
}

// Resume handles GET /sessions/:id/resume.
func (h *SessionHandler) Resume(c *gin.Context) {
	identity, sessionID, ok := h.identityAndID(c)
	if !ok {
		return
	}
	result, err := h.sessionService.Resume(c.Request.Context(), identity, sessionID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"sessao":     result.Session,
		"treino":     result.Workout,
		"exercicios": result.Slots,
		"progresso":  result.Progress,
	})
}

// History handles GET /sessions/history?dias=N.
func (h *SessionHandler) History(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	days := 0
	if raw := c.Query("dias"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid dias query parameter")
			return
		}
	}
	sessions, err := h.sessionService.History(c.Request.Context(), identity, days)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []domain.TrainingSession{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessoes": sessions})
}

func (h *SessionHandler) identityAndID(c *gin.Context) (domain.Identity, int64, bool) {
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
