package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"fitcoach/workout-api/internal/domain"
)

func TestExerciseRepoList(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewExerciseRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM exercises ORDER BY name ASC`).
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "name", "kind", "muscle_group", "description", "created_at"}).
			AddRow(int64(1), "Back Squat", domain.KindStandard, "legs", "", now).
			AddRow(int64(2), "Seated Band Row", domain.KindAdapted, "back", "", now))

	exercises, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	require.Equal(t, domain.KindAdapted, exercises[1].Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}
