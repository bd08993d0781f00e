package domain

import (
	"strings"
	"time"
)

// Role type to distinguish between user roles
type Role string

// Role values match the owner vocabulary used on the wire (idAluno / idPersonal).
const (
	RoleTrainee Role = "aluno"
	RoleCoach   Role = "personal"
)

// User represents a user in the system (either a Coach or a Trainee).
// Registration and credential handling live outside this subsystem; the
// rows here exist so the assignment engine can verify the coach-trainee link.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // Should be unique
	Role      Role      `json:"role"`
	CoachID   *int64    `json:"coachId,omitempty"` // Set on trainees managed by a coach
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}

// Identity is the authenticated caller resolved from a bearer credential.
// It is threaded explicitly through every service call; nothing reads it
// from ambient request state.
type Identity struct {
	ID    int64
	Role  Role
	Email string
}

// EmailMatches compares e against the identity's email, case-insensitively.
func (i Identity) EmailMatches(e string) bool {
	return strings.EqualFold(i.Email, e)
}
