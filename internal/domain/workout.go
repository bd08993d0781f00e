package domain

import "time"

// Category labels a workout's training focus.
type Category string

const (
	CategoryStrength     Category = "strength"
	CategoryConditioning Category = "conditioning"
	CategoryMobility     Category = "mobility"
	CategoryWarmup       Category = "warmup"
	CategoryCustom       Category = "custom"
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryStrength, CategoryConditioning, CategoryMobility, CategoryWarmup, CategoryCustom:
		return true
	}
	return false
}

// Workout is a named training template made of ordered exercise slots.
//
// Ownership is one of three shapes: trainee-only (self-authored), coach-only
// (coach's own library), or coach-for-a-trainee (assigned copy, both ids set).
// The author fields record who created the row and back the permission check.
type Workout struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	Kind          Kind      `json:"kind"`
	Description   string    `json:"description,omitempty"`
	TraineeID     *int64    `json:"idAluno,omitempty"`
	CoachID       *int64    `json:"idPersonal,omitempty"`
	AuthorName    string    `json:"authorName,omitempty"` // Denormalized display name, filled on reads
	AuthorEmail   string    `json:"authorEmail"`
	LastSessionID *int64    `json:"lastSessionId,omitempty"` // Most recent finalized session
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnedByTrainee reports whether id is the workout's trainee owner.
func (w *Workout) OwnedByTrainee(id int64) bool {
	return w.TraineeID != nil && *w.TraineeID == id
}

// OwnedByCoach reports whether id is the workout's coach owner.
func (w *Workout) OwnedByCoach(id int64) bool {
	return w.CoachID != nil && *w.CoachID == id
}
