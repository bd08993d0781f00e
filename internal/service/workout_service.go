package service

import (
	"context"
	"errors"
	"fmt"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrSlotNotFound     = errors.New("exercise slot not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// kindMismatch builds the validation failure for a slot whose exercise kind
// does not match the parent workout's kind.
func kindMismatch(kind domain.Kind) error {
	return &domain.ValidationError{Violations: []string{
		fmt.Sprintf("workouts of kind %s may only contain exercises of kind %s", kind, kind),
	}}
}

// CreateWorkoutInput is the draft for a new workout template. The owner and
// author are taken from the authenticated identity, never from the input.
type CreateWorkoutInput struct {
	Name        string
	Category    domain.Category
	Kind        domain.Kind
	Description string
}

// UpdateWorkoutInput is a partial patch; nil fields keep the stored value.
// The merged record is re-validated with the creation rules.
type UpdateWorkoutInput struct {
	Name        *string
	Category    *domain.Category
	Kind        *domain.Kind
	Description *string
}

// SlotInput carries the training parameters of an exercise slot.
type SlotInput struct {
	ExerciseID  int64
	Position    int
	Sets        int
	Reps        int
	Load        *float64
	RestSeconds *int
	Notes       string
}

// WorkoutDetails is a workout together with its ordered slots, each slot
// carrying exercise metadata.
type WorkoutDetails struct {
	Workout domain.Workout
	Slots   []domain.ExerciseSlot
}

// WorkoutService validates and mutates workout templates and their exercise
// slots.
type WorkoutService interface {
	Create(ctx context.Context, identity domain.Identity, input CreateWorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, identity domain.Identity, id int64) (*WorkoutDetails, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.Workout, error)
	Update(ctx context.Context, identity domain.Identity, id int64, input UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
	AddSlot(ctx context.Context, identity domain.Identity, workoutID int64, input SlotInput) (*domain.ExerciseSlot, error)
	UpdateSlot(ctx context.Context, identity domain.Identity, slotID int64, input SlotInput) (*domain.ExerciseSlot, error)
	RemoveSlot(ctx context.Context, identity domain.Identity, slotID int64) error
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	slotRepo     repository.SlotRepository
	exerciseRepo repository.ExerciseRepository
	guard        PermissionGuard
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	slotRepo repository.SlotRepository,
	exerciseRepo repository.ExerciseRepository,
	guard PermissionGuard,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		slotRepo:     slotRepo,
		exerciseRepo: exerciseRepo,
		guard:        guard,
	}
}

// Create validates the draft and persists a new workout owned and authored
// by the caller.
func (s *workoutService) Create(ctx context.Context, identity domain.Identity, input CreateWorkoutInput) (*domain.Workout, error) {
	workout := &domain.Workout{
		Name:        input.Name,
		Category:    input.Category,
		Kind:        input.Kind,
		Description: input.Description,
		AuthorEmail: identity.Email,
	}
	ownerID := identity.ID
	switch identity.Role {
	case domain.RoleTrainee:
		workout.TraineeID = &ownerID
	case domain.RoleCoach:
		workout.CoachID = &ownerID
	}

	if err := domain.ValidateNewWorkout(workout); err != nil {
		return nil, err
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Get returns the workout with its ordered slots and exercise metadata.
func (s *workoutService) Get(ctx context.Context, identity domain.Identity, id int64) (*WorkoutDetails, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !s.guard.CanViewWorkout(identity, workout) {
		return nil, ErrPermissionDenied
	}
	slots, err := s.slotRepo.GetByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorkoutDetails{Workout: *workout, Slots: slots}, nil
}

// List returns the workouts owned by the caller in its role.
func (s *workoutService) List(ctx context.Context, identity domain.Identity) ([]domain.Workout, error) {
	return s.workoutRepo.ListByOwner(ctx, identity)
}

// Update merges the patch into the stored record, re-validates it with the
// creation rules, and persists.
func (s *workoutService) Update(ctx context.Context, identity domain.Identity, id int64, input UpdateWorkoutInput) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !s.guard.CanMutateWorkout(identity, workout) {
		return nil, ErrPermissionDenied
	}

	if input.Name != nil {
		workout.Name = *input.Name
	}
	if input.Category != nil {
		workout.Category = *input.Category
	}
	if input.Kind != nil {
		workout.Kind = *input.Kind
	}
	if input.Description != nil {
		workout.Description = *input.Description
	}

	if err := domain.ValidateWorkout(workout); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Delete removes the workout and every one of its slots atomically.
func (s *workoutService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if !s.guard.CanMutateWorkout(identity, workout) {
		return ErrPermissionDenied
	}
	if err := s.workoutRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// AddSlot appends an exercise slot to the workout after checking that the
// exercise's kind matches the workout's kind.
func (s *workoutService) AddSlot(ctx context.Context, identity domain.Identity, workoutID int64, input SlotInput) (*domain.ExerciseSlot, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !s.guard.CanMutateWorkout(identity, workout) {
		return nil, ErrPermissionDenied
	}

	slot := &domain.ExerciseSlot{
		WorkoutID:   workoutID,
		ExerciseID:  input.ExerciseID,
		Position:    input.Position,
		Sets:        input.Sets,
		Reps:        input.Reps,
		Load:        input.Load,
		RestSeconds: input.RestSeconds,
		Notes:       input.Notes,
	}
	if err := domain.ValidateSlot(slot); err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.Kind != workout.Kind {
		return nil, kindMismatch(workout.Kind)
	}

	if _, err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	slot.Exercise = exercise
	return slot, nil
}

// UpdateSlot rewrites a slot's training parameters; permission is resolved
// through the slot's parent workout.
func (s *workoutService) UpdateSlot(ctx context.Context, identity domain.Identity, slotID int64, input SlotInput) (*domain.ExerciseSlot, error) {
	slot, workout, err := s.slotWithParent(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanMutateWorkout(identity, workout) {
		return nil, ErrPermissionDenied
	}

	slot.ExerciseID = input.ExerciseID
	slot.Position = input.Position
	slot.Sets = input.Sets
	slot.Reps = input.Reps
	slot.Load = input.Load
	slot.RestSeconds = input.RestSeconds
	slot.Notes = input.Notes
	if err := domain.ValidateSlot(slot); err != nil {
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, slot.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.Kind != workout.Kind {
		return nil, kindMismatch(workout.Kind)
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	slot.Exercise = exercise
	return slot, nil
}

// RemoveSlot deletes a slot; permission is resolved through the parent
// workout.
func (s *workoutService) RemoveSlot(ctx context.Context, identity domain.Identity, slotID int64) error {
	slot, workout, err := s.slotWithParent(ctx, slotID)
	if err != nil {
		return err
	}
	if !s.guard.CanMutateWorkout(identity, workout) {
		return ErrPermissionDenied
	}
	if err := s.slotRepo.Delete(ctx, slot.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	return nil
}

func (s *workoutService) slotWithParent(ctx context.Context, slotID int64) (*domain.ExerciseSlot, *domain.Workout, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSlotNotFound
		}
		return nil, nil, err
	}
	workout, err := s.workoutRepo.GetByID(ctx, slot.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrWorkoutNotFound
		}
		return nil, nil, err
	}
	return slot, workout, nil
}
