package service

import (
	"fitcoach/workout-api/internal/domain"
)

// PermissionGuard decides whether an authenticated identity may see or
// change a given workout or training session. A false answer is a hard stop
// for callers, never a retryable condition.
type PermissionGuard struct{}

// NewPermissionGuard creates a new PermissionGuard.
func NewPermissionGuard() PermissionGuard { return PermissionGuard{} }

// CanViewWorkout reports whether the identity owns the workout in its role's
// slot. Assigned copies carry both slots, so trainee and coach each see them.
func (PermissionGuard) CanViewWorkout(id domain.Identity, w *domain.Workout) bool {
	switch id.Role {
	case domain.RoleTrainee:
		return w.OwnedByTrainee(id.ID)
	case domain.RoleCoach:
		return w.OwnedByCoach(id.ID)
	}
	return false
}

// CanMutateWorkout reports whether the identity may change the workout.
// Both checks are required: the owner slot must match the identity's role
// and id, and the stored author email must match case-insensitively.
// Matching only the numeric id is insufficient; ids can collide across
// roles.
func (g PermissionGuard) CanMutateWorkout(id domain.Identity, w *domain.Workout) bool {
	return g.CanViewWorkout(id, w) && id.EmailMatches(w.AuthorEmail)
}

// CanTouchSession reports whether the identity owns the session. Only the
// performing identity may finalize or resume it.
func (PermissionGuard) CanTouchSession(id domain.Identity, s *domain.TrainingSession) bool {
	return s.OwnedBy(id)
}
