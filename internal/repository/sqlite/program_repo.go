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

// sqliteProgramRepository implements repository.ProgramRepository.
type sqliteProgramRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new instance of sqliteProgramRepository.
func NewProgramRepository(db *gorm.DB) repository.ProgramRepository {
	return &sqliteProgramRepository{db: db}
}

// Create persists the full program tree atomically. Ids are generated here;
// sort orders come from slice position so insertion order is preserved.
func (r *sqliteProgramRepository) Create(ctx context.Context, program *domain.Program) error {
	if program.Name == "" || program.CreatedBy == "" {
		return errors.New("program name and creator are required")
	}

	program.ID = uuid.NewString()
	program.CreatedAt = time.Now().UTC()
	for wi := range program.Workouts {
		workout := &program.Workouts[wi]
		workout.ID = uuid.NewString()
		workout.ProgramID = program.ID
		workout.SortOrder = wi
		for ei := range workout.Exercises {
			exercise := &workout.Exercises[ei]
			exercise.ID = uuid.NewString()
			exercise.WorkoutID = workout.ID
			exercise.SortOrder = ei
		}
	}

	// Create with associations runs in a single transaction.
	return r.db.WithContext(ctx).Create(program).Error
}

func programPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Workouts", func(db *gorm.DB) *gorm.DB {
			return db.Order("workouts.sort_order ASC")
		}).
		Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercises.sort_order ASC")
		})
}

// GetByID returns the program with workouts and exercises in sort order.
func (r *sqliteProgramRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	var program domain.Program
	err := programPreloads(r.db.WithContext(ctx)).Where("id = ?", id).First(&program).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByCreator returns the trainer's programs, newest first.
func (r *sqliteProgramRepository) GetByCreator(ctx context.Context, trainerID string) ([]domain.Program, error) {
	var programs []domain.Program
	err := programPreloads(r.db.WithContext(ctx)).
		Where("created_by = ?", trainerID).
		Order("created_at DESC, id ASC").
		Find(&programs).Error
	if err != nil {
		return nil, err
	}
	return programs, nil
}

// Delete removes the program and cascades to its workouts and exercises.
// The cascade is issued explicitly so it holds regardless of the connection's
// foreign_keys pragma.
func (r *sqliteProgramRepository) Delete(ctx context.Context, id, trainerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND created_by = ?", id, trainerID).Delete(&domain.Program{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		if err := tx.
			Where("workout_id IN (?)", tx.Model(&domain.Workout{}).Select("id").Where("program_id = ?", id)).
			Delete(&domain.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Where("program_id = ?", id).Delete(&domain.Workout{}).Error
	})
}

// sqliteWorkoutRepository implements repository.WorkoutRepository. Workouts
// never live outside their program tree, so reads are all this needs.
type sqliteWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new instance of sqliteWorkoutRepository.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &sqliteWorkoutRepository{db: db}
}

// GetByID returns the workout with its exercises in sort order.
func (r *sqliteWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercises.sort_order ASC")
		}).
		Where("id = ?", id).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}
