package sqlite

import (
	"context"
	"errors"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sqliteAssignmentRepository implements repository.AssignmentRepository.
type sqliteAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new instance of sqliteAssignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &sqliteAssignmentRepository{db: db}
}

// Upsert overwrites any previous assignment for the trainee and refreshes
// assigned_at. Concurrent re-assignment resolves last-write-wins on the
// trainee_id conflict; no merge semantics.
func (r *sqliteAssignmentRepository) Upsert(ctx context.Context, traineeID, programID string) error {
	assignment := domain.TraineeAssignment{
		TraineeID:  traineeID,
		ProgramID:  programID,
		AssignedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trainee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"program_id", "assigned_at"}),
		}).
		Create(&assignment).Error
}

// GetByTraineeID returns the trainee's single active assignment.
func (r *sqliteAssignmentRepository) GetByTraineeID(ctx context.Context, traineeID string) (*domain.TraineeAssignment, error) {
	var assignment domain.TraineeAssignment
	err := r.db.WithContext(ctx).Where("trainee_id = ?", traineeID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}
