package sqlite

import (
	"context"
	"fmt"
	"testing"

	"fitcoach/server/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Shared fixtures for the repository tests. Users are created through the
// repository so trainees get their streak satellite row, same as production.

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	return db
}

func createTrainer(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	code := uuid.NewString()[:6]
	user := &domain.User{
		Name:         gofakeit.Name(),
		Email:        fmt.Sprintf("trainer-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         domain.RoleTrainer,
		InviteCode:   &code,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTrainee(t *testing.T, db *gorm.DB, trainerID string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         gofakeit.Name(),
		Email:        fmt.Sprintf("trainee-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         domain.RoleTrainee,
		TrainerID:    &trainerID,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTask(t *testing.T, db *gorm.DB, trainerID string, targetCount int, assignees ...string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:       "Workout 3x",
		TargetCount: targetCount,
		CreatedBy:   trainerID,
	}
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), task, assignees))
	return task
}

func loadStreak(t *testing.T, db *gorm.DB, traineeID string) domain.Streak {
	t.Helper()
	var streak domain.Streak
	require.NoError(t, db.Where("trainee_id = ?", traineeID).First(&streak).Error)
	return streak
}
