package api

import (
	"errors"
	"net/http"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TaskHandler holds the task service dependency.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// --- Request Structs ---

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	TargetCount int    `json:"targetCount"`
	AssignAll   bool   `json:"assignAll"`
}

// --- Handler Methods ---

// ListTasks returns the caller's scoped task view: trainers get their created
// tasks with per-trainee breakdown, trainees their own assignments.
func (h *TaskHandler) ListTasks(c *gin.Context) {
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

	view, err := h.taskService.ListTasks(c.Request.Context(), callerID, callerRole)
	if err != nil {
		logrus.WithError(err).Error("task listing failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	if view.Role == domain.RoleTrainer {
		c.JSON(http.StatusOK, view.Created)
		return
	}
	c.JSON(http.StatusOK, view.Assigned)
}

// TasksForTrainee returns a specific trainee's task list with progress.
func (h *TaskHandler) TasksForTrainee(c *gin.Context) {
	tasks, err := h.taskService.TasksForTrainee(c.Request.Context(), c.Param("traineeId"))
	if err != nil {
		logrus.WithError(err).Error("trainee task listing failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a task and optionally assigns it to the whole roster.
// Trainer only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), trainerID, req.Title, req.TargetCount, req.AssignAll)
	if err != nil {
		if errors.Is(err, service.ErrTaskTitleRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("task creation failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": task.ID, "message": "Task created"})
}

// RecordProgress increments the calling trainee's progress on a task and
// reports the new progress/completed pair.
func (h *TaskHandler) RecordProgress(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainee from token")
		return
	}

	result, err := h.taskService.RecordProgress(c.Request.Context(), c.Param("taskId"), traineeID)
	if err != nil {
		if errors.Is(err, service.ErrTaskAssignmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.WithError(err).Error("task progress update failed")
		abortWithError(c, http.StatusInternalServerError, "Failed to record progress")
		return
	}

	c.JSON(http.StatusOK, result)
}
