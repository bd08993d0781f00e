package domain

import "time"

// ExerciseSlot is one exercise occurrence inside a workout, with its
// training parameters. Slots are ordered by Position within the workout.
type ExerciseSlot struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"idTreino"`
	ExerciseID  int64     `json:"idExercicio"`
	Position    int       `json:"position"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	Load        *float64  `json:"load,omitempty"`        // kg; optional
	RestSeconds *int      `json:"restSeconds,omitempty"` // optional
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Exercise carries the referenced catalog entry when the slot was loaded
	// with metadata (workout detail reads). Nil otherwise.
	Exercise *Exercise `json:"exercise,omitempty"`
}
