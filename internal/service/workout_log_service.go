package service

import (
	"context"
	"errors"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"
)

var ErrWorkoutIDRequired = errors.New("workout id is required")

// SetInput is one reported set of an exercise.
type SetInput struct {
	Reps   int
	Weight float64
}

// ExerciseLogInput groups the reported sets of one exercise. The set index
// stored per row is the position within this slice.
type ExerciseLogInput struct {
	ExerciseID string
	Sets       []SetInput
}

// --- Service Interface ---
type WorkoutLogService interface {
	// LogWorkout records a completed workout. Exercise ids and indices are
	// trusted verbatim; there is no validation against the workout's declared
	// exercises. Logging has no effect on task or streak state.
	LogWorkout(ctx context.Context, traineeID, workoutID string, exercises []ExerciseLogInput) (*domain.WorkoutLog, error)
	GetLogs(ctx context.Context, traineeID string) ([]repository.WorkoutLogEntry, error)
}

// --- Service Implementation ---

type workoutLogService struct {
	logRepo repository.WorkoutLogRepository
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(logRepo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{logRepo: logRepo}
}

// LogWorkout persists the log and its sparse exercise-log rows atomically.
func (s *workoutLogService) LogWorkout(ctx context.Context, traineeID, workoutID string, exercises []ExerciseLogInput) (*domain.WorkoutLog, error) {
	if workoutID == "" {
		return nil, ErrWorkoutIDRequired
	}

	log := &domain.WorkoutLog{
		TraineeID: traineeID,
		WorkoutID: workoutID,
	}
	for _, ex := range exercises {
		for idx, set := range ex.Sets {
			log.Exercises = append(log.Exercises, domain.ExerciseLog{
				ExerciseID: ex.ExerciseID,
				SetIndex:   idx,
				Reps:       set.Reps,
				Weight:     set.Weight,
			})
		}
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// GetLogs returns the trainee's logs, newest first.
func (s *workoutLogService) GetLogs(ctx context.Context, traineeID string) ([]repository.WorkoutLogEntry, error) {
	logs, err := s.logRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []repository.WorkoutLogEntry{}
	}
	return logs, nil
}
