package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound  = errors.New("training session not found")
	ErrSessionCompleted = errors.New("training session is already completed")
)

// defaultHistoryDays bounds the history query when the caller does not say
// how far back to look.
const defaultHistoryDays = 30

// FinalizeInput is the caller-supplied final state of a session. The whole
// progress snapshot is re-supplied; there is no partial-field update.
type FinalizeInput struct {
	Progress        domain.Progress
	DurationSeconds int
	Notes           string
}

// ResumeResult bundles everything a client needs to continue a session
// where the user left off.
type ResumeResult struct {
	Session  domain.TrainingSession
	Workout  domain.Workout
	Slots    []domain.ExerciseSlot
	Progress domain.Progress
}

// SessionService creates, finalizes and resumes live training sessions and
// derives their completion percentage.
type SessionService interface {
	Start(ctx context.Context, identity domain.Identity, workoutID int64) (*domain.TrainingSession, error)
	Finalize(ctx context.Context, identity domain.Identity, sessionID int64, input FinalizeInput) (*domain.TrainingSession, error)
	Resume(ctx context.Context, identity domain.Identity, sessionID int64) (*ResumeResult, error)
	History(ctx context.Context, identity domain.Identity, days int) ([]domain.TrainingSession, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	workoutRepo repository.WorkoutRepository
	slotRepo    repository.SlotRepository
	guard       PermissionGuard
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	workoutRepo repository.WorkoutRepository,
	slotRepo repository.SlotRepository,
	guard PermissionGuard,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		workoutRepo: workoutRepo,
		slotRepo:    slotRepo,
		guard:       guard,
	}
}

// Start creates an in-progress session with zero progress for a workout the
// caller can see.
func (s *sessionService) Start(ctx context.Context, identity domain.Identity, workoutID int64) (*domain.TrainingSession, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !s.guard.CanViewWorkout(identity, workout) {
		return nil, ErrPermissionDenied
	}

	session := &domain.TrainingSession{
		WorkoutID: workoutID,
		UserID:    identity.ID,
		UserRole:  identity.Role,
		Status:    domain.SessionInProgress,
		StartedAt: time.Now().UTC(),
		Progress:  domain.ZeroProgress(),
	}
	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Finalize recomputes the completion percentage from the supplied snapshot
// and the workout's slots, flips the session to completed when the
// percentage reaches the threshold, and stamps the parent workout with this
// session as its most recent one. A session below the threshold stays
// in_progress and may be finalized again later; a completed session may not.
func (s *sessionService) Finalize(ctx context.Context, identity domain.Identity, sessionID int64, input FinalizeInput) (*domain.TrainingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !s.guard.CanTouchSession(identity, session) {
		return nil, ErrPermissionDenied
	}
	if session.Status == domain.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	slots, err := s.slotRepo.GetByWorkoutID(ctx, session.WorkoutID)
	if err != nil {
		return nil, err
	}

	pct := input.Progress.CompletionPercent(slots)
	now := time.Now().UTC()
	session.Progress = input.Progress
	session.CompletionPct = pct
	session.DurationSeconds = input.DurationSeconds
	session.Notes = input.Notes
	session.EndedAt = &now
	if pct >= domain.CompletionThreshold {
		session.Status = domain.SessionCompleted
	}

	if err := s.sessionRepo.Finalize(ctx, session); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Resume loads the session, its workout and slots, and the decoded progress
// snapshot so a client can continue where the user left off. A missing or
// corrupt stored snapshot degrades to zero progress.
func (s *sessionService) Resume(ctx context.Context, identity domain.Identity, sessionID int64) (*ResumeResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !s.guard.CanTouchSession(identity, session) {
		return nil, ErrPermissionDenied
	}

	workout, err := s.workoutRepo.GetByID(ctx, session.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	slots, err := s.slotRepo.GetByWorkoutID(ctx, session.WorkoutID)
	if err != nil {
		return nil, err
	}

	return &ResumeResult{
		Session:  *session,
		Workout:  *workout,
		Slots:    slots,
		Progress: session.Progress,
	}, nil
}

// History returns the caller's sessions from the last `days` days, most
// recent first.
func (s *sessionService) History(ctx context.Context, identity domain.Identity, days int) ([]domain.TrainingSession, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.sessionRepo.History(ctx, identity, since)
}
