package service

import (
	"context"
	"fmt"
	"testing"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository/sqlite"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// testEnv wires the full service stack against an in-memory database, the
// same composition as cmd/server.
type testEnv struct {
	db          *gorm.DB
	auth        AuthService
	users       UserService
	programs    ProgramService
	workoutLogs WorkoutLogService
	tasks       TaskService
	leaderboard LeaderboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	require.NoError(t, err)

	userRepo := sqlite.NewUserRepository(db)
	programRepo := sqlite.NewProgramRepository(db)
	workoutRepo := sqlite.NewWorkoutRepository(db)
	assignmentRepo := sqlite.NewAssignmentRepository(db)
	logRepo := sqlite.NewWorkoutLogRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	streakRepo := sqlite.NewStreakRepository(db)
	leaderboardRepo := sqlite.NewLeaderboardRepository(db)

	return &testEnv{
		db:          db,
		auth:        NewAuthService(userRepo, testJWTSecret, 0),
		users:       NewUserService(userRepo),
		programs:    NewProgramService(programRepo, workoutRepo, assignmentRepo, userRepo),
		workoutLogs: NewWorkoutLogService(logRepo),
		tasks:       NewTaskService(taskRepo, userRepo),
		leaderboard: NewLeaderboardService(leaderboardRepo, streakRepo, userRepo),
	}
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

func (e *testEnv) registerTrainer(t *testing.T) *domain.User {
	t.Helper()
	_, trainer, err := e.auth.Register(context.Background(), gofakeit.Name(), uniqueEmail("trainer"), "password123", domain.RoleTrainer, "")
	require.NoError(t, err)
	require.NotNil(t, trainer.InviteCode)
	return trainer
}

func (e *testEnv) registerTrainee(t *testing.T, trainer *domain.User) *domain.User {
	t.Helper()
	_, trainee, err := e.auth.Register(context.Background(), gofakeit.Name(), uniqueEmail("trainee"), "password123", domain.RoleTrainee, *trainer.InviteCode)
	require.NoError(t, err)
	return trainee
}

func (e *testEnv) loadStreak(t *testing.T, traineeID string) domain.Streak {
	t.Helper()
	var streak domain.Streak
	require.NoError(t, e.db.Where("trainee_id = ?", traineeID).First(&streak).Error)
	return streak
}
