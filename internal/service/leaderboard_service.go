package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"
)

// leaderboardWindow is the trailing activity window for workoutsThisWeek.
// Sliding, not calendar-aligned.
const leaderboardWindow = 7 * 24 * time.Hour

// --- Service Interface ---
type LeaderboardService interface {
	// GetLeaderboard returns ranked entries scoped to the caller's trainer
	// roster: a trainer sees their own roster, a trainee their trainer's.
	GetLeaderboard(ctx context.Context, callerID string, callerRole domain.Role) ([]repository.LeaderboardEntry, error)
	// GetStreak returns the trainee's streak, zeros when no row exists.
	GetStreak(ctx context.Context, traineeID string) (*domain.Streak, error)
}

// --- Service Implementation ---

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	streakRepo      repository.StreakRepository
	userRepo        repository.UserRepository
	// now is swappable so tests can pin the window edge.
	now func() time.Time
}

// NewLeaderboardService creates a new instance of leaderboardService.
func NewLeaderboardService(
	leaderboardRepo repository.LeaderboardRepository,
	streakRepo repository.StreakRepository,
	userRepo repository.UserRepository,
) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		streakRepo:      streakRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

// GetLeaderboard resolves the scoping trainer and projects their roster.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, callerID string, callerRole domain.Role) ([]repository.LeaderboardEntry, error) {
	scopeTrainerID := callerID
	if callerRole == domain.RoleTrainee {
		caller, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// Defensive fallback to the caller's own id when unbound; under the
		// normal invite flow every trainee has a trainer.
		if err == nil && caller.TrainerID != nil {
			scopeTrainerID = *caller.TrainerID
		}
	}

	since := s.now().Add(-leaderboardWindow)
	entries, err := s.leaderboardRepo.Entries(ctx, scopeTrainerID, since)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []repository.LeaderboardEntry{}
	}
	return entries, nil
}

// GetStreak never 404s: a missing row reads as zeros.
func (s *leaderboardService) GetStreak(ctx context.Context, traineeID string) (*domain.Streak, error) {
	streak, err := s.streakRepo.GetByTraineeID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.Streak{TraineeID: traineeID}, nil
		}
		return nil, err
	}
	return streak, nil
}
