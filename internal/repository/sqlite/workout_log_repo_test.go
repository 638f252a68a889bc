package sqlite

import (
	"context"
	"testing"
	"time"

	"fitcoach/server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutLogCreate_PersistsExerciseRows(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	trainee := createTrainee(t, db, trainer.ID)
	repo := NewWorkoutLogRepository(db)

	log := &domain.WorkoutLog{
		TraineeID: trainee.ID,
		WorkoutID: "workout-1",
		Exercises: []domain.ExerciseLog{
			{ExerciseID: "ex-1", SetIndex: 0, Reps: 10, Weight: 60},
			{ExerciseID: "ex-1", SetIndex: 1, Reps: 8, Weight: 62.5},
		},
	}
	require.NoError(t, repo.Create(context.Background(), log))
	require.NotEmpty(t, log.ID)
	assert.False(t, log.CompletedAt.IsZero())

	var rows []domain.ExerciseLog
	require.NoError(t, db.Where("workout_log_id = ?", log.ID).Order("set_index ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 62.5, rows[1].Weight)
}

func TestWorkoutLogGetByTraineeID_NewestFirstWithName(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	trainee := createTrainee(t, db, trainer.ID)

	program := buildProgramTree(trainer.ID)
	require.NoError(t, NewProgramRepository(db).Create(context.Background(), program))
	workout := program.Workouts[0]

	repo := NewWorkoutLogRepository(db)
	now := time.Now().UTC()
	older := &domain.WorkoutLog{TraineeID: trainee.ID, WorkoutID: workout.ID, CompletedAt: now.Add(-48 * time.Hour)}
	newer := &domain.WorkoutLog{TraineeID: trainee.ID, WorkoutID: "deleted-workout", CompletedAt: now}
	require.NoError(t, repo.Create(context.Background(), older))
	require.NoError(t, repo.Create(context.Background(), newer))

	entries, err := repo.GetByTraineeID(context.Background(), trainee.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, newer.ID, entries[0].ID)
	// Dangling workout ids still list, with an empty name.
	assert.Empty(t, entries[0].WorkoutName)
	assert.Equal(t, workout.Name, entries[1].WorkoutName)
}

func TestWorkoutLogGetByTraineeID_ScopedToTrainee(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	mine := createTrainee(t, db, trainer.ID)
	other := createTrainee(t, db, trainer.ID)
	repo := NewWorkoutLogRepository(db)

	require.NoError(t, repo.Create(context.Background(), &domain.WorkoutLog{TraineeID: other.ID, WorkoutID: "w"}))

	entries, err := repo.GetByTraineeID(context.Background(), mine.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
