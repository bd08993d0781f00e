package repository

import (
	"context"
	"time"

	"fitcoach/workout-api/internal/domain"
)

// Error constants for repository layer. Zero rows affected on a targeted
// update or delete also maps to ErrNotFound: the row the caller named does
// not exist.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Users are written elsewhere; this subsystem only reads them to resolve
// the coach-trainee relationship and author display names.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ExerciseRepository defines the interface for interacting with the
// exercise catalog (read-only here).
type ExerciseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

// WorkoutRepository defines the interface for interacting with workout
// template data. Clone and DeleteCascade are multi-row mutations and must be
// atomic: any mid-step failure rolls the whole operation back.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (int64, error)
	// GetByID returns the workout with the author display name denormalized
	// from the users table.
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)
	ListByOwner(ctx context.Context, identity domain.Identity) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	// DeleteCascade removes every slot of the workout and then the workout
	// itself inside one transaction.
	DeleteCascade(ctx context.Context, workoutID int64) error
	// Clone deep-copies the workout and all of its slots into a new workout
	// owned by the trainee (and the assigning coach), re-stamping the author.
	// Returns the new workout's id.
	Clone(ctx context.Context, sourceID, traineeID, coachID int64, authorEmail string) (int64, error)
}

// SlotRepository defines the interface for interacting with exercise slots.
// Every mutation bumps the parent workout's updated_at in the same
// transaction.
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.ExerciseSlot) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ExerciseSlot, error)
	// GetByWorkoutID returns the workout's slots ordered by position, each
	// with its exercise metadata attached.
	GetByWorkoutID(ctx context.Context, workoutID int64) ([]domain.ExerciseSlot, error)
	Update(ctx context.Context, slot *domain.ExerciseSlot) error
	Delete(ctx context.Context, id int64) error
}

// SessionRepository defines the interface for interacting with training
// session data. Sessions are never deleted.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.TrainingSession) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TrainingSession, error)
	// Finalize persists the session's progress, percentage, duration, notes,
	// status and end time, and points the parent workout at this session as
	// its most recent one, all inside one transaction.
	Finalize(ctx context.Context, session *domain.TrainingSession) error
	History(ctx context.Context, identity domain.Identity, since time.Time) ([]domain.TrainingSession, error)
}
