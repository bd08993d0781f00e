package service

import (
	"context"
	"time"

	"fitcoach/workout-api/internal/domain"
	"fitcoach/workout-api/internal/repository"
)

// In-memory repository stubs shared by the service tests. Each stub keeps its
// records in a map and fails with repository.ErrNotFound for unknown ids, so
// tests exercise the services' error translation without a database.

func int64Ptr(v int64) *int64 { return &v }

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type stubExerciseRepo struct {
	exercises map[int64]*domain.Exercise
}

func (r *stubExerciseRepo) GetByID(_ context.Context, id int64) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, *e)
	}
	return out, nil
}

type stubWorkoutRepo struct {
	workouts map[int64]*domain.Workout
	nextID   int64

	cloneCalls int
	cloneErr   error
}

func newStubWorkoutRepo() *stubWorkoutRepo {
	return &stubWorkoutRepo{workouts: make(map[int64]*domain.Workout), nextID: 1}
}

func (r *stubWorkoutRepo) Create(_ context.Context, w *domain.Workout) (int64, error) {
	w.ID = r.nextID
	r.nextID++
	cp := *w
	r.workouts[w.ID] = &cp
	return w.ID, nil
}

func (r *stubWorkoutRepo) GetByID(_ context.Context, id int64) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *stubWorkoutRepo) ListByOwner(_ context.Context, identity domain.Identity) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if identity.Role == domain.RoleTrainee && w.OwnedByTrainee(identity.ID) {
			out = append(out, *w)
		}
		if identity.Role == domain.RoleCoach && w.OwnedByCoach(identity.ID) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *stubWorkoutRepo) Update(_ context.Context, w *domain.Workout) error {
	if _, ok := r.workouts[w.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *w
	r.workouts[w.ID] = &cp
	return nil
}

func (r *stubWorkoutRepo) DeleteCascade(_ context.Context, workoutID int64) error {
	if _, ok := r.workouts[workoutID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, workoutID)
	return nil
}

func (r *stubWorkoutRepo) Clone(_ context.Context, sourceID, traineeID, coachID int64, authorEmail string) (int64, error) {
	r.cloneCalls++
	if r.cloneErr != nil {
		return 0, r.cloneErr
	}
	src, ok := r.workouts[sourceID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	cp := *src
	cp.ID = r.nextID
	r.nextID++
	cp.TraineeID = int64Ptr(traineeID)
	cp.CoachID = int64Ptr(coachID)
	cp.AuthorEmail = authorEmail
	r.workouts[cp.ID] = &cp
	return cp.ID, nil
}

type stubSlotRepo struct {
	slots  map[int64]*domain.ExerciseSlot
	nextID int64
}

func newStubSlotRepo() *stubSlotRepo {
	return &stubSlotRepo{slots: make(map[int64]*domain.ExerciseSlot), nextID: 1}
}

func (r *stubSlotRepo) Create(_ context.Context, s *domain.ExerciseSlot) (int64, error) {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.slots[s.ID] = &cp
	return s.ID, nil
}

func (r *stubSlotRepo) GetByID(_ context.Context, id int64) (*domain.ExerciseSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSlotRepo) GetByWorkoutID(_ context.Context, workoutID int64) ([]domain.ExerciseSlot, error) {
	var out []domain.ExerciseSlot
	for _, s := range r.slots {
		if s.WorkoutID == workoutID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSlotRepo) Update(_ context.Context, s *domain.ExerciseSlot) error {
	if _, ok := r.slots[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *stubSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.slots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.slots, id)
	return nil
}

func (r *stubSlotRepo) count(workoutID int64) int {
	n := 0
	for _, s := range r.slots {
		if s.WorkoutID == workoutID {
			n++
		}
	}
	return n
}

type stubSessionRepo struct {
	sessions map[int64]*domain.TrainingSession
	nextID   int64
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[int64]*domain.TrainingSession), nextID: 1}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.TrainingSession) (int64, error) {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.sessions[s.ID] = &cp
	return s.ID, nil
}

func (r *stubSessionRepo) GetByID(_ context.Context, id int64) (*domain.TrainingSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSessionRepo) Finalize(_ context.Context, s *domain.TrainingSession) error {
	if _, ok := r.sessions[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *stubSessionRepo) History(_ context.Context, identity domain.Identity, since time.Time) ([]domain.TrainingSession, error) {
	var out []domain.TrainingSession
	for _, s := range r.sessions {
		if s.UserID == identity.ID && s.UserRole == identity.Role && !s.StartedAt.Before(since) {
			out = append(out, *s)
		}
	}
	return out, nil
}
