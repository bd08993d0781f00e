package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// SlotRepo implements repository.SlotRepository using PostgreSQL.
//
// Slot mutations and the parent workout's updated_at bump always land in the
// same transaction, so a slot change is never visible without the template
// looking modified.
type SlotRepo struct{ db *DB }

// NewSlotRepo constructs an exercise slot repository.
func NewSlotRepo(db *DB) *SlotRepo { return &SlotRepo{db: db} }

const touchWorkoutSQL = `UPDATE workouts SET updated_at=$2 WHERE id=$1`

// Create inserts a new slot and bumps the parent workout.
func (r *SlotRepo) Create(ctx context.Context, slot *domain.ExerciseSlot) (id int64, err error) {
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

	const ins = `
INSERT INTO workout_exercises (workout_id, exercise_id, position, sets, reps, load, rest_seconds, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING id`
	now := time.Now().UTC()
	if err = tx.QueryRow(ctx, ins,
		slot.WorkoutID, slot.ExerciseID, slot.Position, slot.Sets, slot.Reps,
		slot.Load, slot.RestSeconds, slot.Notes, now,
	).Scan(&id); err != nil {
		return 0, err
	}
	if _, err = tx.Exec(ctx, touchWorkoutSQL, slot.WorkoutID, now); err != nil {
		return 0, err
	}
	slot.ID = id
	slot.CreatedAt = now
	slot.UpdatedAt = now
	return id, nil
}

// GetByID retrieves a single slot.
func (r *SlotRepo) GetByID(ctx context.Context, id int64) (*domain.ExerciseSlot, error) {
	const q = `
SELECT id, workout_id, exercise_id, position, sets, reps, load, rest_seconds, notes, created_at, updated_at
FROM workout_exercises WHERE id=$1`
	var s domain.ExerciseSlot
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.WorkoutID, &s.ExerciseID, &s.Position, &s.Sets, &s.Reps,
		&s.Load, &s.RestSeconds, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByWorkoutID retrieves all slots of a workout ordered by position, each
// carrying its exercise metadata.
func (r *SlotRepo) GetByWorkoutID(ctx context.Context, workoutID int64) ([]domain.ExerciseSlot, error) {
	const q = `
SELECT s.id, s.workout_id, s.exercise_id, s.position, s.sets, s.reps, s.load, s.rest_seconds, s.notes, s.created_at, s.updated_at,
       e.name, e.kind, e.muscle_group, e.description
FROM workout_exercises s
JOIN exercises e ON e.id = s.exercise_id
WHERE s.workout_id = $1
ORDER BY s.position ASC`
	rows, err := r.db.Pool.Query(ctx, q, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExerciseSlot
	for rows.Next() {
		var (
			s  domain.ExerciseSlot
			ex domain.Exercise
		)
		if err = rows.Scan(
			&s.ID, &s.WorkoutID, &s.ExerciseID, &s.Position, &s.Sets, &s.Reps,
			&s.Load, &s.RestSeconds, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&ex.Name, &ex.Kind, &ex.MuscleGroup, &ex.Description,
		); err != nil {
			return nil, err
		}
		ex.ID = s.ExerciseID
		s.Exercise = &ex
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update persists a slot's training parameters and bumps the parent workout.
func (r *SlotRepo) Update(ctx context.Context, slot *domain.ExerciseSlot) (err error) {
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

	const upd = `
UPDATE workout_exercises
SET exercise_id=$2, position=$3, sets=$4, reps=$5, load=$6, rest_seconds=$7, notes=$8, updated_at=$9
WHERE id=$1`
	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, upd,
		slot.ID, slot.ExerciseID, slot.Position, slot.Sets, slot.Reps,
		slot.Load, slot.RestSeconds, slot.Notes, now,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if _, err = tx.Exec(ctx, touchWorkoutSQL, slot.WorkoutID, now); err != nil {
		return err
	}
	slot.UpdatedAt = now
	return nil
}

// Delete removes a slot and bumps the parent workout.
func (r *SlotRepo) Delete(ctx context.Context, id int64) (err error) {
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

	const sel = `SELECT workout_id FROM workout_exercises WHERE id=$1`
	const del = `DELETE FROM workout_exercises WHERE id=$1`

	var workoutID int64
	if err = tx.QueryRow(ctx, sel, id).Scan(&workoutID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	if _, err = tx.Exec(ctx, del, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, touchWorkoutSQL, workoutID, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}
