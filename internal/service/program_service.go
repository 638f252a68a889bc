package service

import (
	"context"
	"errors"
	"fmt"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProgramNameRequired = errors.New("program name is required")
	ErrProgramNotFound     = errors.New("program not found")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrAssignmentInvalid   = errors.New("trainee id and program id are required")
)

// Inputs for program creation. Zero-valued numeric fields fall back to the
// schema defaults (3 sets, 10 reps, 0 weight), unnamed entries get positional
// fallback names.
type ExerciseInput struct {
	Name         string
	Sets         int
	TargetReps   int
	TargetWeight float64
}

type WorkoutInput struct {
	Name      string
	Exercises []ExerciseInput
}

// --- Service Interface ---
type ProgramService interface {
	CreateProgram(ctx context.Context, trainerID, name, description string, workouts []WorkoutInput) (*domain.Program, error)
	// ListPrograms is scoped: trainers see their own programs, trainees see
	// their trainer's. A trainee with no trainer gets an empty list.
	ListPrograms(ctx context.Context, callerID string, callerRole domain.Role) ([]domain.Program, error)
	AssignProgram(ctx context.Context, traineeID, programID string) error
	// GetAssignedProgram returns nil (not an error) when the trainee has no
	// assignment or the referenced program is gone.
	GetAssignedProgram(ctx context.Context, traineeID string) (*domain.Program, error)
	GetWorkout(ctx context.Context, workoutID string) (*domain.Workout, error)
	DeleteProgram(ctx context.Context, trainerID, programID string) error
}

// --- Service Implementation ---

type programService struct {
	programRepo    repository.ProgramRepository
	workoutRepo    repository.WorkoutRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	workoutRepo repository.WorkoutRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
) ProgramService {
	return &programService{
		programRepo:    programRepo,
		workoutRepo:    workoutRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

// CreateProgram builds the program tree and persists it atomically.
func (s *programService) CreateProgram(ctx context.Context, trainerID, name, description string, workouts []WorkoutInput) (*domain.Program, error) {
	if name == "" {
		return nil, ErrProgramNameRequired
	}

	program := &domain.Program{
		Name:        name,
		Description: description,
		CreatedBy:   trainerID,
		Workouts:    make([]domain.Workout, 0, len(workouts)),
	}

	for wi, w := range workouts {
		workout := domain.Workout{
			Name:      w.Name,
			Exercises: make([]domain.Exercise, 0, len(w.Exercises)),
		}
		if workout.Name == "" {
			workout.Name = fmt.Sprintf("Workout %d", wi+1)
		}
		for ei, e := range w.Exercises {
			exercise := domain.Exercise{
				Name:         e.Name,
				Sets:         e.Sets,
				TargetReps:   e.TargetReps,
				TargetWeight: e.TargetWeight,
			}
			if exercise.Name == "" {
				exercise.Name = fmt.Sprintf("Exercise %d", ei+1)
			}
			if exercise.Sets <= 0 {
				exercise.Sets = 3
			}
			if exercise.TargetReps <= 0 {
				exercise.TargetReps = 10
			}
			workout.Exercises = append(workout.Exercises, exercise)
		}
		program.Workouts = append(program.Workouts, workout)
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// ListPrograms resolves the scoping trainer and returns their programs.
func (s *programService) ListPrograms(ctx context.Context, callerID string, callerRole domain.Role) ([]domain.Program, error) {
	scopeTrainerID := callerID
	if callerRole == domain.RoleTrainee {
		caller, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []domain.Program{}, nil
			}
			return nil, err
		}
		if caller.TrainerID == nil {
			// Unbound trainee: empty set, not an error.
			return []domain.Program{}, nil
		}
		scopeTrainerID = *caller.TrainerID
	}

	programs, err := s.programRepo.GetByCreator(ctx, scopeTrainerID)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return programs, nil
}

// AssignProgram upserts the trainee's single active program.
func (s *programService) AssignProgram(ctx context.Context, traineeID, programID string) error {
	if traineeID == "" || programID == "" {
		return ErrAssignmentInvalid
	}
	return s.assignmentRepo.Upsert(ctx, traineeID, programID)
}

// GetAssignedProgram returns the trainee's program tree, or nil.
func (s *programService) GetAssignedProgram(ctx context.Context, traineeID string) (*domain.Program, error) {
	assignment, err := s.assignmentRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, assignment.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Dangling assignment: treat like no assignment.
			return nil, nil
		}
		return nil, err
	}
	return program, nil
}

// GetWorkout returns a single workout with its exercises in order.
func (s *programService) GetWorkout(ctx context.Context, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteProgram removes one of the trainer's own programs with its tree.
func (s *programService) DeleteProgram(ctx context.Context, trainerID, programID string) error {
	err := s.programRepo.Delete(ctx, programID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgramNotFound
	}
	return err
}
