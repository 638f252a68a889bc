package repository

import (
	"context"
	"time"

	"fitcoach/server/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate record")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TraineeWithStreak is a roster row: a trainee joined with their streak
// fields, both defaulting to 0 when no streak row exists.
type TraineeWithStreak struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          domain.Role `json:"role"`
	TrainerID     *string     `json:"trainerId"`
	CurrentStreak int         `json:"currentStreak"`
	LongestStreak int         `json:"longestStreak"`
}

// WorkoutLogEntry is a log row joined with the workout's name. The join is a
// left join: the name is empty if the workout has since been deleted.
type WorkoutLogEntry struct {
	ID          string    `json:"id"`
	TraineeID   string    `json:"traineeId"`
	WorkoutID   string    `json:"workoutId"`
	CompletedAt time.Time `json:"completedAt"`
	WorkoutName string    `json:"workoutName"`
}

// LeaderboardEntry is one ranked row of the trainer-scoped leaderboard.
type LeaderboardEntry struct {
	TraineeID        string `json:"traineeId"`
	Name             string `json:"name"`
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	WorkoutsThisWeek int    `json:"workoutsThisWeek"`
}

// AssignmentBreakdown is one trainee's progress on a task, as seen by the
// trainer who created it.
type AssignmentBreakdown struct {
	TraineeID string `json:"traineeId"`
	Name      string `json:"name"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// TaskWithAssignments is a task plus its per-trainee breakdown (trainer view).
type TaskWithAssignments struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	TargetCount int                   `json:"targetCount"`
	Type        domain.TaskType       `json:"type"`
	Assignments []AssignmentBreakdown `json:"assignments"`
}

// TraineeTask is a task joined with the calling trainee's own progress.
type TraineeTask struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	TargetCount int             `json:"targetCount"`
	Type        domain.TaskType `json:"type"`
	Progress    int             `json:"progress"`
	Completed   bool            `json:"completed"`
}

// ProgressUpdate is the outcome of one task-progress increment.
// JustCompleted is true only on the not-completed -> completed transition;
// it is what gates the streak side effect to exactly once per completion.
type ProgressUpdate struct {
	Progress      int
	Completed     bool
	JustCompleted bool
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create inserts the user and, for trainees, the zeroed streak satellite
	// row in the same transaction.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetTrainerByInviteCode resolves an invite code to its owning trainer.
	GetTrainerByInviteCode(ctx context.Context, code string) (*domain.User, error)
	// GetTraineesByTrainerID returns the trainer's roster enriched with
	// streak fields (0 when no streak row exists).
	GetTraineesByTrainerID(ctx context.Context, trainerID string) ([]TraineeWithStreak, error)
	// GetWithStreak returns a single user enriched with streak fields.
	GetWithStreak(ctx context.Context, id string) (*TraineeWithStreak, error)
}

// ProgramRepository defines the interface for interacting with program data.
// Programs are stored as whole trees (program + workouts + exercises).
type ProgramRepository interface {
	// Create persists the full tree atomically.
	Create(ctx context.Context, program *domain.Program) error
	// GetByID returns the program with workouts and exercises in sort order.
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	// GetByCreator returns the trainer's programs, newest first, with nested
	// workouts/exercises in sort order.
	GetByCreator(ctx context.Context, trainerID string) ([]domain.Program, error)
	// Delete removes the program and cascades to its workouts and exercises.
	// The trainer id guards ownership.
	Delete(ctx context.Context, id, trainerID string) error
}

// AssignmentRepository manages the single active program per trainee.
type AssignmentRepository interface {
	// Upsert overwrites any previous assignment and refreshes assigned_at.
	Upsert(ctx context.Context, traineeID, programID string) error
	GetByTraineeID(ctx context.Context, traineeID string) (*domain.TraineeAssignment, error)
}

// WorkoutRepository reads individual workouts out of their program trees.
type WorkoutRepository interface {
	// GetByID returns the workout with its exercises in sort order.
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
}

// WorkoutLogRepository defines the interface for workout log data.
type WorkoutLogRepository interface {
	// Create persists the log and its exercise-log rows atomically.
	Create(ctx context.Context, log *domain.WorkoutLog) error
	// GetByTraineeID returns the trainee's logs, newest first.
	GetByTraineeID(ctx context.Context, traineeID string) ([]WorkoutLogEntry, error)
}

// TaskRepository defines the interface for tasks, their assignments, and the
// progress state machine.
type TaskRepository interface {
	// Create persists the task and its assignment rows atomically.
	Create(ctx context.Context, task *domain.Task, assigneeIDs []string) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByCreator(ctx context.Context, trainerID string) ([]TaskWithAssignments, error)
	GetForTrainee(ctx context.Context, traineeID string) ([]TraineeTask, error)
	GetAssignment(ctx context.Context, taskID, traineeID string) (*domain.TaskAssignment, error)
	// RecordProgress runs the whole increment transition in one transaction:
	// a server-side `progress = progress + 1`, completion derived from the new
	// value, and the streak bump on the completion edge only. Returns
	// ErrNotFound when no assignment row exists (it is never auto-created).
	RecordProgress(ctx context.Context, taskID, traineeID string) (*ProgressUpdate, error)
}

// StreakRepository reads streak satellites.
type StreakRepository interface {
	GetByTraineeID(ctx context.Context, traineeID string) (*domain.Streak, error)
}

// LeaderboardRepository is the read-only projection behind the leaderboard.
type LeaderboardRepository interface {
	// Entries returns every trainee under the trainer with streak fields and
	// the count of workout logs completed at or after `since`, ordered by
	// current streak descending, name ascending.
	Entries(ctx context.Context, trainerID string, since time.Time) ([]LeaderboardEntry, error)
}
