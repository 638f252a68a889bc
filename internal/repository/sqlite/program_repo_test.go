package sqlite

import (
	"context"
	"testing"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProgramTree(trainerID string) *domain.Program {
	return &domain.Program{
		Name:        "Strength Block A",
		Description: "4-week base block",
		CreatedBy:   trainerID,
		Workouts: []domain.Workout{
			{
				Name: "Day 1: Upper",
				Exercises: []domain.Exercise{
					{Name: "Bench Press", Sets: 5, TargetReps: 5, TargetWeight: 82.5},
					{Name: "Row", Sets: 4, TargetReps: 8, TargetWeight: 70},
					{Name: "Curl", Sets: 3, TargetReps: 12, TargetWeight: 12.25},
				},
			},
			{
				Name: "Day 2: Lower",
				Exercises: []domain.Exercise{
					{Name: "Squat", Sets: 5, TargetReps: 5, TargetWeight: 100},
					{Name: "RDL", Sets: 3, TargetReps: 10, TargetWeight: 90.5},
					{Name: "Calf Raise", Sets: 3, TargetReps: 15, TargetWeight: 40},
				},
			},
		},
	}
}

func TestProgramRoundTrip_PreservesOrderAndNumbers(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	repo := NewProgramRepository(db)

	program := buildProgramTree(trainer.ID)
	require.NoError(t, repo.Create(context.Background(), program))
	require.NotEmpty(t, program.ID)

	loaded, err := repo.GetByID(context.Background(), program.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Workouts, 2)
	assert.Equal(t, "Day 1: Upper", loaded.Workouts[0].Name)
	assert.Equal(t, "Day 2: Lower", loaded.Workouts[1].Name)

	first := loaded.Workouts[0].Exercises
	require.Len(t, first, 3)
	assert.Equal(t, []string{"Bench Press", "Row", "Curl"},
		[]string{first[0].Name, first[1].Name, first[2].Name})
	// REAL weights survive exactly.
	assert.Equal(t, 82.5, first[0].TargetWeight)
	assert.Equal(t, 12.25, first[2].TargetWeight)
	assert.Equal(t, 5, first[0].Sets)
	assert.Equal(t, 5, first[0].TargetReps)

	second := loaded.Workouts[1].Exercises
	require.Len(t, second, 3)
	assert.Equal(t, 90.5, second[1].TargetWeight)
}

func TestGetByCreator_OnlyOwnProgramsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	mine := createTrainer(t, db)
	other := createTrainer(t, db)
	repo := NewProgramRepository(db)

	require.NoError(t, repo.Create(context.Background(), &domain.Program{Name: "Mine", CreatedBy: mine.ID}))
	require.NoError(t, repo.Create(context.Background(), &domain.Program{Name: "Theirs", CreatedBy: other.ID}))

	programs, err := repo.GetByCreator(context.Background(), mine.ID)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Mine", programs[0].Name)
}

func TestDeleteProgram_CascadesToWorkoutsAndExercises(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	repo := NewProgramRepository(db)

	program := buildProgramTree(trainer.ID)
	require.NoError(t, repo.Create(context.Background(), program))
	require.NoError(t, repo.Delete(context.Background(), program.ID, trainer.ID))

	_, err := repo.GetByID(context.Background(), program.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var workouts, exercises int64
	require.NoError(t, db.Model(&domain.Workout{}).Where("program_id = ?", program.ID).Count(&workouts).Error)
	assert.Zero(t, workouts)
	require.NoError(t, db.Model(&domain.Exercise{}).Count(&exercises).Error)
	assert.Zero(t, exercises)
}

func TestDeleteProgram_OwnershipGuard(t *testing.T) {
	db := newTestDB(t)
	owner := createTrainer(t, db)
	intruder := createTrainer(t, db)
	repo := NewProgramRepository(db)

	program := &domain.Program{Name: "Guarded", CreatedBy: owner.ID}
	require.NoError(t, repo.Create(context.Background(), program))

	err := repo.Delete(context.Background(), program.ID, intruder.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(context.Background(), program.ID)
	assert.NoError(t, err)
}

func TestWorkoutGetByID_OrderedExercises(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	program := buildProgramTree(trainer.ID)
	require.NoError(t, NewProgramRepository(db).Create(context.Background(), program))

	workout, err := NewWorkoutRepository(db).GetByID(context.Background(), program.Workouts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Day 2: Lower", workout.Name)
	require.Len(t, workout.Exercises, 3)
	assert.Equal(t, "Squat", workout.Exercises[0].Name)
	assert.Equal(t, "Calf Raise", workout.Exercises[2].Name)
}

func TestAssignmentUpsert_LastWriteWins(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	trainee := createTrainee(t, db, trainer.ID)
	programRepo := NewProgramRepository(db)
	assignmentRepo := NewAssignmentRepository(db)

	first := &domain.Program{Name: "First", CreatedBy: trainer.ID}
	second := &domain.Program{Name: "Second", CreatedBy: trainer.ID}
	require.NoError(t, programRepo.Create(context.Background(), first))
	require.NoError(t, programRepo.Create(context.Background(), second))

	require.NoError(t, assignmentRepo.Upsert(context.Background(), trainee.ID, first.ID))
	require.NoError(t, assignmentRepo.Upsert(context.Background(), trainee.ID, second.ID))

	assignment, err := assignmentRepo.GetByTraineeID(context.Background(), trainee.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, assignment.ProgramID)

	// One row per trainee: the upsert replaced, not appended.
	var count int64
	require.NoError(t, db.Model(&domain.TraineeAssignment{}).Where("trainee_id = ?", trainee.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
