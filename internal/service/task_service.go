package service

import (
	"context"
	"errors"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTaskTitleRequired      = errors.New("task title is required")
	ErrTaskAssignmentNotFound = errors.New("task assignment not found")
)

// TaskListView is the role-scoped result of the task listing. Exactly one of
// the two variants is populated.
type TaskListView struct {
	Role domain.Role `json:"role"`
	// Trainer variant: created tasks with per-trainee breakdown.
	Created []repository.TaskWithAssignments `json:"created,omitempty"`
	// Trainee variant: assigned tasks with own progress.
	Assigned []repository.TraineeTask `json:"assigned,omitempty"`
}

// ProgressResult is the outcome reported back after a progress increment.
type ProgressResult struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// --- Service Interface ---
type TaskService interface {
	// CreateTask creates the task and, when assignAll is set, pushes an
	// assignment row to every trainee currently on the trainer's roster.
	CreateTask(ctx context.Context, trainerID, title string, targetCount int, assignAll bool) (*domain.Task, error)
	ListTasks(ctx context.Context, callerID string, callerRole domain.Role) (*TaskListView, error)
	TasksForTrainee(ctx context.Context, traineeID string) ([]repository.TraineeTask, error)
	// RecordProgress increments the trainee's progress on the task by one.
	// Not idempotent: every call lands an increment, and progress may exceed
	// the target once the task is complete. The streak side effect fires only
	// on the completion edge.
	RecordProgress(ctx context.Context, taskID, traineeID string) (*ProgressResult, error)
}

// --- Service Implementation ---

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new instance of taskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) TaskService {
	return &taskService{taskRepo: taskRepo, userRepo: userRepo}
}

// CreateTask persists the task and its assignment rows in one transaction.
func (s *taskService) CreateTask(ctx context.Context, trainerID, title string, targetCount int, assignAll bool) (*domain.Task, error) {
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &domain.Task{
		Title:       title,
		TargetCount: targetCount,
		Type:        domain.TaskTypeWeekly,
		CreatedBy:   trainerID,
	}

	var assigneeIDs []string
	if assignAll {
		trainees, err := s.userRepo.GetTraineesByTrainerID(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		for _, t := range trainees {
			assigneeIDs = append(assigneeIDs, t.ID)
		}
	}

	if err := s.taskRepo.Create(ctx, task, assigneeIDs); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks resolves the caller's scope and returns the matching view.
func (s *taskService) ListTasks(ctx context.Context, callerID string, callerRole domain.Role) (*TaskListView, error) {
	if callerRole == domain.RoleTrainer {
		created, err := s.taskRepo.GetByCreator(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if created == nil {
			created = []repository.TaskWithAssignments{}
		}
		return &TaskListView{Role: domain.RoleTrainer, Created: created}, nil
	}

	assigned, err := s.TasksForTrainee(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &TaskListView{Role: domain.RoleTrainee, Assigned: assigned}, nil
}

// TasksForTrainee returns the trainee's assigned tasks with progress.
func (s *taskService) TasksForTrainee(ctx context.Context, traineeID string) ([]repository.TraineeTask, error) {
	tasks, err := s.taskRepo.GetForTrainee(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []repository.TraineeTask{}
	}
	return tasks, nil
}

// RecordProgress delegates the transition to the store-side state machine and
// maps the result to the caller-facing shape.
func (s *taskService) RecordProgress(ctx context.Context, taskID, traineeID string) (*ProgressResult, error) {
	update, err := s.taskRepo.RecordProgress(ctx, taskID, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskAssignmentNotFound
		}
		return nil, err
	}
	return &ProgressResult{Progress: update.Progress, Completed: update.Completed}, nil
}
