package domain

import "time"

// Kind is the compatibility tag shared by workouts and exercises. A workout
// may only contain exercises whose kind equals its own.
type Kind string

const (
	KindStandard Kind = "standard"
	KindAdapted  Kind = "adapted"
)

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == KindStandard || k == KindAdapted
}

// Exercise is an entry of the exercise catalog referenced by workout slots.
// The catalog itself is maintained elsewhere; this subsystem only reads it.
type Exercise struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	MuscleGroup string    `json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs"
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
