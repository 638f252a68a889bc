package api

import (
	"errors"
	"net/http"

	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request Structs ---

type CreateExerciseRequest struct {
	Name         string  `json:"name"`
	Sets         int     `json:"sets"`
	TargetReps   int     `json:"targetReps"`
	TargetWeight float64 `json:"targetWeight"`
}

type CreateWorkoutRequest struct {
	Name      string                  `json:"name"`
	Exercises []CreateExerciseRequest `json:"exercises"`
}

type CreateProgramRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Workouts    []CreateWorkoutRequest `json:"workouts"`
}

type AssignProgramRequest struct {
	TraineeID string `json:"traineeId" binding:"required"`
	ProgramID string `json:"programId" binding:"required"`
}

// --- Handler Methods ---

// ListPrograms returns programs scoped to the caller: a trainer's own, or the
// calling trainee's trainer's.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	callerRole, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify role from token")
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), callerID, callerRole)
	if err != nil {
		logrus.WithError(err).Error("program listing failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to list programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// CreateProgram persists a full program tree. Trainer only.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token")
		return
	}

	workouts := make([]service.WorkoutInput, 0, len(req.Workouts))
	for _, w := range req.Workouts {
		workout := service.WorkoutInput{Name: w.Name}
		for _, e := range w.Exercises {
			workout.Exercises = append(workout.Exercises, service.ExerciseInput{
				Name:         e.Name,
				Sets:         e.Sets,
				TargetReps:   e.TargetReps,
				TargetWeight: e.TargetWeight,
			})
		}
		workouts = append(workouts, workout)
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), trainerID, req.Name, req.Description, workouts)
	if err != nil {
		if errors.Is(err, service.ErrProgramNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("program creation failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to create program")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": program.ID, "message": "Program created"})
}

// AssignProgram upserts the trainee's active program. Trainer only.
func (h *ProgramHandler) AssignProgram(c *gin.Context) {
	var req AssignProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.programService.AssignProgram(c.Request.Context(), req.TraineeID, req.ProgramID); err != nil {
		if errors.Is(err, service.ErrAssignmentInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("program assignment failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to assign program")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Program assigned"})
}

// GetAssignedProgram returns the trainee's program tree, or JSON null when
// nothing is assigned.
func (h *ProgramHandler) GetAssignedProgram(c *gin.Context) {
	program, err := h.programService.GetAssignedProgram(c.Request.Context(), c.Param("traineeId"))
	if err != nil {
		logrus.WithError(err).Error("assigned program lookup failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load assigned program")
		return
	}
	// program may be nil here; that serializes to null by design.
	c.JSON(http.StatusOK, program)
}

// GetWorkout returns a single workout with its ordered exercises.
func (h *ProgramHandler) GetWorkout(c *gin.Context) {
	workout, err := h.programService.GetWorkout(c.Request.Context(), c.Param("workoutId"))
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.WithError(err).Error("workout lookup failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteProgram removes one of the trainer's own programs. Trainer only.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), trainerID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.WithError(err).Error("program deletion failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to delete program")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Program deleted"})
}
