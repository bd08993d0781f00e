package service

import (
	"context"
	"errors"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTraineeNotFound   = errors.New("trainee user not found")
	ErrTraineeNotRole    = errors.New("user found but is not a trainee")
	ErrTraineeNotManaged = errors.New("trainee is not managed by this coach")
)

// AssignmentService deep-copies a coach-owned workout into a new workout for
// one of the coach's trainees.
type AssignmentService interface {
	Assign(ctx context.Context, coach domain.Identity, workoutID, traineeID int64) (int64, error)
}

type assignmentService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
	guard       PermissionGuard
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	guard PermissionGuard,
) AssignmentService {
	return &assignmentService{
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		guard:       guard,
	}
}

// Assign clones the source workout and all of its slots into a new workout
// owned by the trainee, in one transaction. The result shares no rows with
// the source: later edits to either copy never affect the other.
func (s *assignmentService) Assign(ctx context.Context, coach domain.Identity, workoutID, traineeID int64) (int64, error) {
	if coach.Role != domain.RoleCoach {
		return 0, ErrPermissionDenied
	}

	// The trainee must exist and be currently linked to the calling coach.
	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrTraineeNotFound
		}
		return 0, err
	}
	if !trainee.IsTrainee() {
		return 0, ErrTraineeNotRole
	}
	if trainee.CoachID == nil || *trainee.CoachID != coach.ID {
		return 0, ErrTraineeNotManaged
	}

	source, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrWorkoutNotFound
		}
		return 0, err
	}
	if !s.guard.CanViewWorkout(coach, source) {
		return 0, ErrPermissionDenied
	}

	newID, err := s.workoutRepo.Clone(ctx, workoutID, traineeID, coach.ID, coach.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrWorkoutNotFound
		}
		return 0, err
	}
	return newID, nil
}
