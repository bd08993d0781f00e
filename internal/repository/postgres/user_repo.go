package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// UserRepo implements repository.UserRepository using PostgreSQL.
// Read-only: account management happens outside this subsystem.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, email, role, coach_id, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CoachID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID selects a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email, case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email)=lower($1)`
	return scanUser(r.db.Pool.QueryRow(ctx, q, email))
}
