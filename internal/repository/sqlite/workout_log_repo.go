package sqlite

import (
	"context"
	"errors"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sqliteWorkoutLogRepository implements repository.WorkoutLogRepository.
type sqliteWorkoutLogRepository struct {
	db *gorm.DB
}

// NewWorkoutLogRepository creates a new instance of sqliteWorkoutLogRepository.
func NewWorkoutLogRepository(db *gorm.DB) repository.WorkoutLogRepository {
	return &sqliteWorkoutLogRepository{db: db}
}

// Create persists the log and its exercise-log rows atomically. Exercise ids
// and set indices are stored verbatim; the log layer does not validate them
// against the workout definition.
func (r *sqliteWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) error {
	if log.TraineeID == "" || log.WorkoutID == "" {
		return errors.New("trainee id and workout id are required")
	}

	log.ID = uuid.NewString()
	if log.CompletedAt.IsZero() {
		log.CompletedAt = time.Now().UTC()
	}
	for i := range log.Exercises {
		log.Exercises[i].WorkoutLogID = log.ID
	}

	return r.db.WithContext(ctx).Create(log).Error
}

// GetByTraineeID returns the trainee's logs newest first, each joined with
// the workout's name (empty if the workout is gone).
func (r *sqliteWorkoutLogRepository) GetByTraineeID(ctx context.Context, traineeID string) ([]repository.WorkoutLogEntry, error) {
	var rows []repository.WorkoutLogEntry
	err := r.db.WithContext(ctx).
		Table("workout_logs").
		Select(`workout_logs.id, workout_logs.trainee_id, workout_logs.workout_id,
			workout_logs.completed_at, COALESCE(workouts.name, '') AS workout_name`).
		Joins("LEFT JOIN workouts ON workouts.id = workout_logs.workout_id").
		Where("workout_logs.trainee_id = ?", traineeID).
		Order("workout_logs.completed_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
