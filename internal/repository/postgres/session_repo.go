package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// SessionRepo implements repository.SessionRepository using PostgreSQL.
// The progress snapshot is stored as jsonb and decoded through
// domain.DecodeProgress, so a corrupt blob degrades to zero progress instead
// of failing the read.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a training session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// workout_id is NULL on sessions whose workout was deleted; a detached
// session reads back with WorkoutID 0.
const sessionColumns = `id, COALESCE(workout_id, 0), user_id, user_role, status, started_at, ended_at, progress, duration_seconds, notes, completion_pct`

func scanSession(row pgx.Row) (*domain.TrainingSession, error) {
	var (
		s   domain.TrainingSession
		raw []byte
	)
	err := row.Scan(
		&s.ID, &s.WorkoutID, &s.UserID, &s.UserRole, &s.Status,
		&s.StartedAt, &s.EndedAt, &raw, &s.DurationSeconds, &s.Notes, &s.CompletionPct,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s.Progress = domain.DecodeProgress(raw)
	return &s, nil
}

// Create inserts a new in-progress session and returns its id.
func (r *SessionRepo) Create(ctx context.Context, session *domain.TrainingSession) (int64, error) {
	const q = `
INSERT INTO training_sessions (workout_id, user_id, user_role, status, started_at, progress, duration_seconds, notes, completion_pct)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	raw, err := json.Marshal(session.Progress)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.db.Pool.QueryRow(ctx, q,
		session.WorkoutID, session.UserID, session.UserRole, session.Status,
		session.StartedAt, raw, session.DurationSeconds, session.Notes, session.CompletionPct,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	session.ID = id
	return id, nil
}

// GetByID retrieves a single session.
func (r *SessionRepo) GetByID(ctx context.Context, id int64) (*domain.TrainingSession, error) {
	const q = `SELECT ` + sessionColumns + ` FROM training_sessions WHERE id=$1`
	return scanSession(r.db.Pool.QueryRow(ctx, q, id))
}

// Finalize persists the session's final state and points the parent workout
// at it as the most recent session, in one transaction.
func (r *SessionRepo) Finalize(ctx context.Context, session *domain.TrainingSession) (err error) {
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
UPDATE training_sessions
SET status=$2, ended_at=$3, progress=$4, duration_seconds=$5, notes=$6, completion_pct=$7
WHERE id=$1`
	const point = `UPDATE workouts SET last_session_id=$2 WHERE id=$1`

	raw, err := json.Marshal(session.Progress)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, upd,
		session.ID, session.Status, session.EndedAt, raw,
		session.DurationSeconds, session.Notes, session.CompletionPct,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	if _, err = tx.Exec(ctx, point, session.WorkoutID, session.ID); err != nil {
		return err
	}
	return nil
}

// History retrieves the identity's sessions started at or after the given
// time, most recent first.
func (r *SessionRepo) History(ctx context.Context, identity domain.Identity, since time.Time) ([]domain.TrainingSession, error) {
	const q = `
SELECT ` + sessionColumns + `
FROM training_sessions
WHERE user_id=$1 AND user_role=$2 AND started_at >= $3
ORDER BY started_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, identity.ID, identity.Role, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TrainingSession
	for rows.Next() {
		var (
			s   domain.TrainingSession
			raw []byte
		)
		if err = rows.Scan(
			&s.ID, &s.WorkoutID, &s.UserID, &s.UserRole, &s.Status,
			&s.StartedAt, &s.EndedAt, &raw, &s.DurationSeconds, &s.Notes, &s.CompletionPct,
		); err != nil {
			return nil, err
		}
		s.Progress = domain.DecodeProgress(raw)
		out = append(out, s)
	}
	return out, rows.Err()
}
