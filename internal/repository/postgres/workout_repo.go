package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// WorkoutRepo implements repository.WorkoutRepository using PostgreSQL.
type WorkoutRepo struct{ db *DB }

// NewWorkoutRepo constructs a workout repository.
func NewWorkoutRepo(db *DB) *WorkoutRepo { return &WorkoutRepo{db: db} }

const workoutColumns = `w.id, w.name, w.category, w.kind, w.description, w.trainee_id, w.coach_id, w.author_email, COALESCE(u.name, ''), w.last_session_id, w.created_at, w.updated_at`

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var w domain.Workout
	err := row.Scan(
		&w.ID, &w.Name, &w.Category, &w.Kind, &w.Description,
		&w.TraineeID, &w.CoachID, &w.AuthorEmail, &w.AuthorName,
		&w.LastSessionID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Create inserts a new workout template and returns its id.
func (r *WorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (int64, error) {
	const q = `
INSERT INTO workouts (name, category, kind, description, trainee_id, coach_id, author_email, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	var id int64
	err := r.db.Pool.QueryRow(ctx, q,
		workout.Name, workout.Category, workout.Kind, workout.Description,
		workout.TraineeID, workout.CoachID, workout.AuthorEmail, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	workout.ID = id
	return id, nil
}

// GetByID retrieves a single workout with the author's display name
// denormalized from the users table.
func (r *WorkoutRepo) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	const q = `
SELECT ` + workoutColumns + `
FROM workouts w
LEFT JOIN users u ON lower(u.email) = lower(w.author_email)
WHERE w.id = $1`
	return scanWorkout(r.db.Pool.QueryRow(ctx, q, id))
}

// ListByOwner retrieves the workouts visible to the identity: trainees see
// workouts on their trainee slot, coaches see workouts on their coach slot.
func (r *WorkoutRepo) ListByOwner(ctx context.Context, identity domain.Identity) ([]domain.Workout, error) {
	const byTrainee = `
SELECT ` + workoutColumns + `
FROM workouts w
LEFT JOIN users u ON lower(u.email) = lower(w.author_email)
WHERE w.trainee_id = $1
ORDER BY w.updated_at DESC`
	const byCoach = `
SELECT ` + workoutColumns + `
FROM workouts w
LEFT JOIN users u ON lower(u.email) = lower(w.author_email)
WHERE w.coach_id = $1
ORDER BY w.updated_at DESC`

	q := byTrainee
	if identity.Role == domain.RoleCoach {
		q = byCoach
	}
	rows, err := r.db.Pool.Query(ctx, q, identity.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err = rows.Scan(
			&w.ID, &w.Name, &w.Category, &w.Kind, &w.Description,
			&w.TraineeID, &w.CoachID, &w.AuthorEmail, &w.AuthorName,
			&w.LastSessionID, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Update persists the mutable fields of a workout and bumps updated_at.
// Owner ids and author are never changed through this path.
func (r *WorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	const q = `
UPDATE workouts
SET name=$2, category=$3, kind=$4, description=$5, updated_at=$6
WHERE id=$1`
	now := time.Now().UTC()
	tag, err := r.db.Pool.Exec(ctx, q,
		workout.ID, workout.Name, workout.Category, workout.Kind, workout.Description, now,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = now
	return nil
}

// DeleteCascade removes the workout's slots and then the workout itself in
// one transaction. Slots go first so referential integrity holds at every
// point; any failure rolls the whole delete back. Training sessions that
// reference the workout are detached by the schema (workout_id set to NULL),
// never deleted.
func (r *WorkoutRepo) DeleteCascade(ctx context.Context, workoutID int64) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delSlots = `DELETE FROM workout_exercises WHERE workout_id=$1`
	const delWorkout = `DELETE FROM workouts WHERE id=$1`

	if _, err = tx.Exec(ctx, delSlots, workoutID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, delWorkout, workoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Clone deep-copies a workout and all of its slots into a new workout for
// the trainee, re-stamping the author with the assigning coach. The copy is
// structural: the new rows share nothing with the source.
func (r *WorkoutRepo) Clone(ctx context.Context, sourceID, traineeID, coachID int64, authorEmail string) (newID int64, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const selSource = `SELECT name, category, kind, description FROM workouts WHERE id=$1`
	const insWorkout = `
INSERT INTO workouts (name, category, kind, description, trainee_id, coach_id, author_email, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id`
	const selSlots = `
SELECT exercise_id, position, sets, reps, load, rest_seconds, notes
FROM workout_exercises WHERE workout_id=$1 ORDER BY position ASC`
	const insSlot = `
INSERT INTO workout_exercises (workout_id, exercise_id, position, sets, reps, load, rest_seconds, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	var (
		name, description string
		category          domain.Category
		kind              domain.Kind
	)
	if err = tx.QueryRow(ctx, selSource, sourceID).Scan(&name, &category, &kind, &description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	now := time.Now().UTC()
	if err = tx.QueryRow(ctx, insWorkout,
		name, category, kind, description, traineeID, coachID, authorEmail, now,
	).Scan(&newID); err != nil {
		return 0, err
	}

	type slotCopy struct {
		exerciseID  int64
		position    int
		sets        int
		reps        int
		load        *float64
		restSeconds *int
		notes       string
	}
	var copies []slotCopy

	rows, err := tx.Query(ctx, selSlots, sourceID)
	if err != nil {
		return 0, err
	}
	for rows.Next() {
		var sc slotCopy
		if err = rows.Scan(&sc.exerciseID, &sc.position, &sc.sets, &sc.reps, &sc.load, &sc.restSeconds, &sc.notes); err != nil {
			rows.Close()
			return 0, err
		}
		copies = append(copies, sc)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return 0, err
	}

	for _, sc := range copies {
		if _, err = tx.Exec(ctx, insSlot,
			newID, sc.exerciseID, sc.position, sc.sets, sc.reps, sc.load, sc.restSeconds, sc.notes, now,
		); err != nil {
			return 0, err
		}
	}
	return newID, nil
}
