package api

import (
	"net/http"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers under /api. Write operations that author
// trainer-owned entities are role-gated with a hard 403, not filtered.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	programService service.ProgramService,
	workoutLogService service.WorkoutLogService,
	taskService service.TaskService,
	leaderboardService service.LeaderboardService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	programHandler := NewProgramHandler(programService)
	workoutLogHandler := NewWorkoutLogHandler(workoutLogService)
	taskHandler := NewTaskHandler(taskService)
	leaderboardHandler := NewLeaderboardHandler(leaderboardService)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware, authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		userGroup := protected.Group("/users")
		{
			userGroup.GET("", userHandler.ListUsers)
			userGroup.GET("/:id", userHandler.GetUser)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.POST("", trainerOnly, programHandler.CreateProgram)
			programGroup.PUT("/assign", trainerOnly, programHandler.AssignProgram)
			programGroup.GET("/assigned/:traineeId", programHandler.GetAssignedProgram)
			programGroup.DELETE("/:id", trainerOnly, programHandler.DeleteProgram)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/:workoutId", programHandler.GetWorkout)
			workoutGroup.POST("/log", RoleMiddleware(domain.RoleTrainee), workoutLogHandler.LogWorkout)
		}

		// Listing lives outside /workouts: the router cannot hold a static
		// "logs" segment next to the :workoutId parameter.
		protected.GET("/logs/:traineeId", workoutLogHandler.GetLogs)

		taskGroup := protected.Group("/tasks")
		{
			taskGroup.GET("", taskHandler.ListTasks)
			taskGroup.GET("/trainee/:traineeId", taskHandler.TasksForTrainee)
			taskGroup.POST("", trainerOnly, taskHandler.CreateTask)
			taskGroup.PUT("/:taskId/progress", RoleMiddleware(domain.RoleTrainee), taskHandler.RecordProgress)
		}

		leaderboardGroup := protected.Group("/leaderboard")
		{
			leaderboardGroup.GET("", leaderboardHandler.GetLeaderboard)
			leaderboardGroup.GET("/streak/:traineeId", leaderboardHandler.GetStreak)
		}
	}
}
