package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// ExerciseRepo implements repository.ExerciseRepository using PostgreSQL.
type ExerciseRepo struct{ db *DB }

// NewExerciseRepo constructs an exercise catalog repository.
func NewExerciseRepo(db *DB) *ExerciseRepo { return &ExerciseRepo{db: db} }

// GetByID selects a catalog exercise by id.
func (r *ExerciseRepo) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	const q = `
SELECT id, name, kind, muscle_group, description, created_at
FROM exercises WHERE id=$1`
	var e domain.Exercise
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&e.ID, &e.Name, &e.Kind, &e.MuscleGroup, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns the whole exercise catalog ordered by name.
func (r *ExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	const q = `
SELECT id, name, kind, muscle_group, description, created_at
FROM exercises ORDER BY name ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err = rows.Scan(&e.ID, &e.Name, &e.Kind, &e.MuscleGroup, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
