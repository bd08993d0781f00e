package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *DB) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &DB{Pool: mock}
}

func TestWorkoutRepoCreate(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	coachID := int64(3)
	w := &domain.Workout{
		Name:        "Block A",
		Category:    domain.CategoryStrength,
		Kind:        domain.KindStandard,
		CoachID:     &coachID,
		AuthorEmail: "coach@example.com",
	}

	mock.ExpectQuery(`INSERT INTO workouts`).
		WithArgs(w.Name, w.Category, w.Kind, w.Description, w.TraineeID, w.CoachID, w.AuthorEmail, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(context.Background(), w)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Equal(t, int64(7), w.ID)
	require.False(t, w.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoGetByID(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	now := time.Now().UTC()
	traineeID := int64(10)
	mock.ExpectQuery(`SELECT .+ FROM workouts w\s+LEFT JOIN users u`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "name", "category", "kind", "description", "trainee_id", "coach_id", "author_email", "author_name", "last_session_id", "created_at", "updated_at"}).
			AddRow(int64(7), "Block A", domain.CategoryStrength, domain.KindStandard, "", &traineeID, (*int64)(nil), "ana@example.com", "Ana", (*int64)(nil), now, now))

	w, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Block A", w.Name)
	require.Equal(t, "Ana", w.AuthorName)
	require.Equal(t, int64(10), *w.TraineeID)
	require.Nil(t, w.CoachID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoGetByID_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM workouts w`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkoutRepoUpdate_NotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	mock.ExpectExec(`UPDATE workouts\s+SET name=`).
		WithArgs(int64(404), "X", domain.CategoryStrength, domain.KindStandard, "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.Workout{
		ID: 404, Name: "X", Category: domain.CategoryStrength, Kind: domain.KindStandard,
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoDeleteCascade(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM workout_exercises WHERE workout_id=`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM workouts WHERE id=`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoDeleteCascade_MissingWorkoutRollsBack(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	// Slots are gone but the workout row is missing; nothing may stay deleted.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM workout_exercises WHERE workout_id=`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM workouts WHERE id=`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	require.ErrorIs(t, repo.DeleteCascade(context.Background(), 404), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoClone(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, category, kind, description FROM workouts WHERE id=`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"name", "category", "kind", "description"}).
			AddRow("Block A", domain.CategoryStrength, domain.KindStandard, "coach notes"))
	mock.ExpectQuery(`INSERT INTO workouts`).
		WithArgs("Block A", domain.CategoryStrength, domain.KindStandard, "coach notes",
			int64(10), int64(3), "coach@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT exercise_id, position, sets, reps, load, rest_seconds, notes`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"exercise_id", "position", "sets", "reps", "load", "rest_seconds", "notes"}).
			AddRow(int64(1), 0, 3, 10, (*float64)(nil), (*int)(nil), "").
			AddRow(int64(2), 1, 4, 8, (*float64)(nil), (*int)(nil), "slow tempo"))
	mock.ExpectExec(`INSERT INTO workout_exercises`).
		WithArgs(int64(42), int64(1), 0, 3, 10, (*float64)(nil), (*int)(nil), "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO workout_exercises`).
		WithArgs(int64(42), int64(2), 1, 4, 8, (*float64)(nil), (*int)(nil), "slow tempo", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	newID, err := repo.Clone(context.Background(), 7, 10, 3, "coach@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(42), newID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoClone_SlotInsertFailureRollsBack(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	boom := errors.New("constraint violation")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, category, kind, description FROM workouts WHERE id=`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"name", "category", "kind", "description"}).
			AddRow("Block A", domain.CategoryStrength, domain.KindStandard, ""))
	mock.ExpectQuery(`INSERT INTO workouts`).
		WithArgs("Block A", domain.CategoryStrength, domain.KindStandard, "",
			int64(10), int64(3), "coach@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT exercise_id, position, sets, reps, load, rest_seconds, notes`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.
			NewRows([]string{"exercise_id", "position", "sets", "reps", "load", "rest_seconds", "notes"}).
			AddRow(int64(1), 0, 3, 10, (*float64)(nil), (*int)(nil), ""))
	mock.ExpectExec(`INSERT INTO workout_exercises`).
		WithArgs(int64(42), int64(1), 0, 3, 10, (*float64)(nil), (*int)(nil), "", pgxmock.AnyArg()).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.Clone(context.Background(), 7, 10, 3, "coach@example.com")
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkoutRepoClone_SourceNotFound(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewWorkoutRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT name, category, kind, description FROM workouts WHERE id=`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Clone(context.Background(), 404, 10, 3, "coach@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
