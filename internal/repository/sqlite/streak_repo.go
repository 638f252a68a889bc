package sqlite

import (
	"context"
	"errors"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"gorm.io/gorm"
)

// sqliteStreakRepository implements repository.StreakRepository.
type sqliteStreakRepository struct {
	db *gorm.DB
}

// NewStreakRepository creates a new instance of sqliteStreakRepository.
func NewStreakRepository(db *gorm.DB) repository.StreakRepository {
	return &sqliteStreakRepository{db: db}
}

// GetByTraineeID returns the trainee's streak row.
func (r *sqliteStreakRepository) GetByTraineeID(ctx context.Context, traineeID string) (*domain.Streak, error) {
	var streak domain.Streak
	err := r.db.WithContext(ctx).Where("trainee_id = ?", traineeID).First(&streak).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &streak, nil
}

// sqliteLeaderboardRepository implements repository.LeaderboardRepository.
type sqliteLeaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new instance of sqliteLeaderboardRepository.
func NewLeaderboardRepository(db *gorm.DB) repository.LeaderboardRepository {
	return &sqliteLeaderboardRepository{db: db}
}

// Entries projects the trainer's roster joined with streaks and a trailing
// workout-log count. The window is a sliding one (completed_at >= since),
// not calendar-aligned. Ties on current streak break by name ascending so
// the ordering is deterministic.
func (r *sqliteLeaderboardRepository) Entries(ctx context.Context, trainerID string, since time.Time) ([]repository.LeaderboardEntry, error) {
	var rows []repository.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS trainee_id, users.name,
			COALESCE(streaks.current_streak, 0) AS current_streak,
			COALESCE(streaks.longest_streak, 0) AS longest_streak,
			(SELECT COUNT(*) FROM workout_logs
			 WHERE workout_logs.trainee_id = users.id
			   AND workout_logs.completed_at >= ?) AS workouts_this_week`, since).
		Joins("LEFT JOIN streaks ON streaks.trainee_id = users.id").
		Where("users.role = ? AND users.trainer_id = ?", domain.RoleTrainee, trainerID).
		Order("COALESCE(streaks.current_streak, 0) DESC, users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
