package api

import (
	"errors"
	"net/http"

	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkoutLogHandler holds the workout log service dependency.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- Request Structs ---

type LoggedSetRequest struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type LoggedExerciseRequest struct {
	ExerciseID string             `json:"exerciseId"`
	Sets       []LoggedSetRequest `json:"sets"`
}

type LogWorkoutRequest struct {
	WorkoutID string                  `json:"workoutId" binding:"required"`
	Exercises []LoggedExerciseRequest `json:"exercisesLogged"`
}

// --- Handler Methods ---

// LogWorkout records a completed workout for the calling trainee. The logged
// tuples are stored as supplied; advancing a task is a separate call the
// client makes afterwards.
func (h *WorkoutLogHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainee from token")
		return
	}

	exercises := make([]service.ExerciseLogInput, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		input := service.ExerciseLogInput{ExerciseID: ex.ExerciseID}
		for _, set := range ex.Sets {
			input.Sets = append(input.Sets, service.SetInput{Reps: set.Reps, Weight: set.Weight})
		}
		exercises = append(exercises, input)
	}

	log, err := h.logService.LogWorkout(c.Request.Context(), traineeID, req.WorkoutID, exercises)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutIDRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("workout logging failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to log workout")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": log.ID, "message": "Workout logged"})
}

// GetLogs returns a trainee's workout logs, newest first.
func (h *WorkoutLogHandler) GetLogs(c *gin.Context) {
	logs, err := h.logService.GetLogs(c.Request.Context(), c.Param("traineeId"))
	if err != nil {
		logrus.WithError(err).Error("workout log listing failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to load workout logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
