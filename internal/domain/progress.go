package domain

import (
	"encoding/json"
	"math"
)

// Tuning constants of the completion heuristic. Historical session data was
// computed with these exact values; changing them breaks comparability.
const (
	// currentExerciseDamping discounts the credit given for the exercise
	// still in progress relative to fully finished ones.
	currentExerciseDamping = 0.3
	// CompletionThreshold is the percentage at or above which a finalized
	// session counts as completed.
	CompletionThreshold = 90
)

// Progress is the snapshot of where a user is inside a workout. Clients
// re-supply the whole snapshot on every update; there is no partial merge.
type Progress struct {
	CurrentExercise    int   `json:"currentExerciseIndex"`
	CurrentSet         int   `json:"currentSet"`
	CompletedExercises []int `json:"completedExercises"`
}

// ZeroProgress is the snapshot of a freshly started session.
func ZeroProgress() Progress {
	return Progress{CurrentExercise: 0, CurrentSet: 1, CompletedExercises: []int{}}
}

// DecodeProgress parses a stored snapshot, falling back to the zero snapshot
// when the blob is absent or corrupt so a stale session can still be resumed.
func DecodeProgress(raw []byte) Progress {
	if len(raw) == 0 {
		return ZeroProgress()
	}
	var p Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return ZeroProgress()
	}
	if p.CompletedExercises == nil {
		p.CompletedExercises = []int{}
	}
	return p
}

// CompletionPercent estimates how much of a workout the snapshot represents,
// as an integer in [0,100].
//
// Finished exercises earn full proportional credit; the exercise currently in
// progress earns set-proportional credit damped by currentExerciseDamping.
// The result is clamped so over-reporting clients can never exceed 100.
func (p Progress) CompletionPercent(slots []ExerciseSlot) int {
	total := len(slots)
	if total == 0 {
		return 0
	}
	completed := len(p.CompletedExercises)
	if completed >= total || p.CurrentExercise >= total {
		return 100
	}

	setsAtCurrent := 1
	if p.CurrentExercise >= 0 && p.CurrentExercise < total && slots[p.CurrentExercise].Sets > 0 {
		setsAtCurrent = slots[p.CurrentExercise].Sets
	}
	withinCurrent := float64(p.CurrentSet-1) / float64(setsAtCurrent) * 100

	var raw float64
	if completed > 0 {
		base := float64(completed) / float64(total) * 100
		raw = base + withinCurrent*currentExerciseDamping
	} else {
		raw = withinCurrent
	}

	pct := int(math.Round(raw))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
