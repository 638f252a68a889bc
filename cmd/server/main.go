package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach/server/internal/api"
	"fitcoach/server/internal/config"
	"fitcoach/server/internal/repository/sqlite"
	"fitcoach/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logrus.SetLevel(level)
	}
	logrus.WithFields(logrus.Fields{
		"address": cfg.Server.Address,
		"dbPath":  cfg.Database.Path,
	}).Info("starting FitCoach server")

	if cfg.JWT.Secret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	// --- Database ---
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}
	logrus.Info("database opened and migrated")

	// --- Repositories ---
	userRepo := sqlite.NewUserRepository(db)
	programRepo := sqlite.NewProgramRepository(db)
	workoutRepo := sqlite.NewWorkoutRepository(db)
	assignmentRepo := sqlite.NewAssignmentRepository(db)
	workoutLogRepo := sqlite.NewWorkoutLogRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	streakRepo := sqlite.NewStreakRepository(db)
	leaderboardRepo := sqlite.NewLeaderboardRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo)
	programService := service.NewProgramService(programRepo, workoutRepo, assignmentRepo, userRepo)
	workoutLogService := service.NewWorkoutLogService(workoutLogRepo)
	taskService := service.NewTaskService(taskRepo, userRepo)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, streakRepo, userRepo)

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, userService, programService,
		workoutLogService, taskService, leaderboardService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.WithField("address", cfg.Server.Address).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen and serve")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}
