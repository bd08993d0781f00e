package domain

// workoutRules runs the rules shared by create and update validation.
func workoutRules(w *Workout, v *violations) {
	if w.Name == "" {
		v.add("name is required")
	}
	if w.AuthorEmail == "" {
		v.add("author is required")
	}
	if !w.Category.IsValid() {
		v.add("category must be one of: strength, conditioning, mobility, warmup, custom")
	}
	if !w.Kind.IsValid() {
		v.add("kind must be standard or adapted")
	}
	if (w.TraineeID == nil || *w.TraineeID <= 0) && (w.CoachID == nil || *w.CoachID <= 0) {
		v.add("an owner (idAluno or idPersonal) must be set")
	}
}

// ValidateNewWorkout checks every creation rule and reports all violations
// together. New workouts must name exactly one owner; the both-owners shape
// exists only on copies produced by the assignment engine.
func ValidateNewWorkout(w *Workout) error {
	var v violations
	workoutRules(w, &v)
	hasTrainee := w.TraineeID != nil && *w.TraineeID > 0
	hasCoach := w.CoachID != nil && *w.CoachID > 0
	if hasTrainee && hasCoach {
		v.add("exactly one of idAluno or idPersonal must be set")
	}
	return v.err()
}

// ValidateWorkout checks the rules that apply to an existing (merged) record.
// Assigned copies carry both owner ids, so owner exclusivity is not
// re-checked here.
func ValidateWorkout(w *Workout) error {
	var v violations
	workoutRules(w, &v)
	return v.err()
}

// ValidateSlot checks the training parameters of an exercise slot.
func ValidateSlot(s *ExerciseSlot) error {
	var v violations
	if s.ExerciseID <= 0 {
		v.add("idExercicio is required")
	}
	if s.Sets <= 0 {
		v.add("sets must be greater than zero")
	}
	if s.Reps <= 0 {
		v.add("reps must be greater than zero")
	}
	if s.Position < 0 {
		v.add("position must not be negative")
	}
	return v.err()
}
