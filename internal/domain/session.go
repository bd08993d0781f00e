package domain

import "time"

// SessionStatus is the training session state. The only transition is
// in_progress → completed; completed is terminal.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// TrainingSession is one live attempt at a workout by one identity.
// The session belongs to whoever performs it, which is independent of who
// owns the workout being performed.
type TrainingSession struct {
	ID              int64         `json:"idSessao"`
	WorkoutID       int64         `json:"idTreino"`
	UserID          int64         `json:"userId"`
	UserRole        Role          `json:"userRole"`
	Status          SessionStatus `json:"status"`
	StartedAt       time.Time     `json:"startedAt"`
	EndedAt         *time.Time    `json:"endedAt,omitempty"`
	Progress        Progress      `json:"progresso"`
	DurationSeconds int           `json:"duracao"`
	Notes           string        `json:"notas,omitempty"`
	CompletionPct   int           `json:"completionPct"` // always in [0,100]
}

// OwnedBy reports whether the session belongs to the given identity.
func (s *TrainingSession) OwnedBy(id Identity) bool {
	return s.UserID == id.ID && s.UserRole == id.Role
}
