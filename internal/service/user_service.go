package service

import (
	"context"
	"errors"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"
)

// RosterView is the role-scoped result of the user listing. Exactly one of
// the two variants is populated, resolved once at the scoping gate instead of
// being re-derived in every handler.
type RosterView struct {
	Role domain.Role `json:"role"`
	// Trainer variant: the full roster enriched with streak fields.
	Trainees []repository.TraineeWithStreak `json:"trainees,omitempty"`
	// Trainee variant: only the caller's own record. Trainees cannot list
	// their peers.
	Self *domain.User `json:"self,omitempty"`
}

// --- Service Interface ---
type UserService interface {
	ListUsers(ctx context.Context, callerID string, callerRole domain.Role) (*RosterView, error)
	GetUserWithStreak(ctx context.Context, id string) (*repository.TraineeWithStreak, error)
}

// --- Service Implementation ---

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListUsers resolves the caller's scope and returns the matching roster view.
func (s *userService) ListUsers(ctx context.Context, callerID string, callerRole domain.Role) (*RosterView, error) {
	if callerRole == domain.RoleTrainer {
		trainees, err := s.userRepo.GetTraineesByTrainerID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if trainees == nil {
			trainees = []repository.TraineeWithStreak{}
		}
		return &RosterView{Role: domain.RoleTrainer, Trainees: trainees}, nil
	}

	self, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	self.PasswordHash = ""
	return &RosterView{Role: domain.RoleTrainee, Self: self}, nil
}

// GetUserWithStreak returns a single user enriched with streak fields.
func (s *userService) GetUserWithStreak(ctx context.Context, id string) (*repository.TraineeWithStreak, error) {
	user, err := s.userRepo.GetWithStreak(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
