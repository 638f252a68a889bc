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

// sqliteTaskRepository implements repository.TaskRepository.
type sqliteTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of sqliteTaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &sqliteTaskRepository{db: db}
}

// Create persists the task and one assignment row per assignee in a single
// transaction. Assignments exist only from creation time; there is no later
// re-assignment path.
func (r *sqliteTaskRepository) Create(ctx context.Context, task *domain.Task, assigneeIDs []string) error {
	if task.Title == "" || task.CreatedBy == "" {
		return errors.New("task title and creator are required")
	}

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()
	if task.TargetCount <= 0 {
		task.TargetCount = 3
	}
	if task.Type == "" {
		task.Type = domain.TaskTypeWeekly
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments").Create(task).Error; err != nil {
			return err
		}
		for _, traineeID := range assigneeIDs {
			assignment := domain.TaskAssignment{TaskID: task.ID, TraineeID: traineeID}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a task by its id.
func (r *sqliteTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetByCreator returns the trainer's tasks newest first, each with its
// per-trainee assignment breakdown (joined with trainee names).
func (r *sqliteTaskRepository) GetByCreator(ctx context.Context, trainerID string) ([]repository.TaskWithAssignments, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("created_by = ?", trainerID).
		Order("created_at DESC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	result := make([]repository.TaskWithAssignments, 0, len(tasks))
	for _, task := range tasks {
		var breakdown []repository.AssignmentBreakdown
		err := r.db.WithContext(ctx).
			Table("task_assignments").
			Select(`task_assignments.trainee_id, users.name,
				task_assignments.progress, task_assignments.completed`).
			Joins("JOIN users ON users.id = task_assignments.trainee_id").
			Where("task_assignments.task_id = ?", task.ID).
			Scan(&breakdown).Error
		if err != nil {
			return nil, err
		}
		result = append(result, repository.TaskWithAssignments{
			ID:          task.ID,
			Title:       task.Title,
			TargetCount: task.TargetCount,
			Type:        task.Type,
			Assignments: breakdown,
		})
	}
	return result, nil
}

// GetForTrainee returns the tasks assigned to the trainee, newest first,
// joined with the trainee's own progress.
func (r *sqliteTaskRepository) GetForTrainee(ctx context.Context, traineeID string) ([]repository.TraineeTask, error) {
	var rows []repository.TraineeTask
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select(`tasks.id, tasks.title, tasks.target_count, tasks.type,
			task_assignments.progress, task_assignments.completed`).
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.trainee_id = ?", traineeID).
		Order("tasks.created_at DESC, tasks.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAssignment returns the assignment row for (taskID, traineeID).
func (r *sqliteTaskRepository) GetAssignment(ctx context.Context, taskID, traineeID string) (*domain.TaskAssignment, error) {
	var assignment domain.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND trainee_id = ?", taskID, traineeID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// RecordProgress runs the task-progress transition in one transaction.
//
// The increment is issued server-side (progress = progress + 1) so two racing
// calls each land their own +1 instead of the second overwriting the first.
// Completion is derived from the post-increment value and persisted alongside
// it. The streak bump fires only on the not-completed -> completed edge;
// further increments on a completed task keep raising progress but never
// touch the streak again.
func (r *sqliteTaskRepository) RecordProgress(ctx context.Context, taskID, traineeID string) (*repository.ProgressUpdate, error) {
	var update repository.ProgressUpdate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The assignment must already exist; it is never auto-created.
		var previous domain.TaskAssignment
		if err := tx.Where("task_id = ? AND trainee_id = ?", taskID, traineeID).
			First(&previous).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		var task domain.Task
		if err := tx.Select("target_count").Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&domain.TaskAssignment{}).
			Where("task_id = ? AND trainee_id = ?", taskID, traineeID).
			UpdateColumn("progress", gorm.Expr("progress + 1")).Error; err != nil {
			return err
		}

		var fresh domain.TaskAssignment
		if err := tx.Where("task_id = ? AND trainee_id = ?", taskID, traineeID).
			First(&fresh).Error; err != nil {
			return err
		}

		// No clamp: progress keeps counting past the target.
		completed := fresh.Progress >= task.TargetCount
		if err := tx.Model(&domain.TaskAssignment{}).
			Where("task_id = ? AND trainee_id = ?", taskID, traineeID).
			UpdateColumn("completed", completed).Error; err != nil {
			return err
		}

		update = repository.ProgressUpdate{
			Progress:      fresh.Progress,
			Completed:     completed,
			JustCompleted: completed && !previous.Completed,
		}

		if update.JustCompleted {
			// A missing streak row is skipped silently: no error, no row
			// created. MAX keeps longest_streak >= current_streak.
			if err := tx.Model(&domain.Streak{}).
				Where("trainee_id = ?", traineeID).
				UpdateColumns(map[string]interface{}{
					"current_streak": gorm.Expr("current_streak + 1"),
					"longest_streak": gorm.Expr("MAX(longest_streak, current_streak + 1)"),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &update, nil
}
