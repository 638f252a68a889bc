package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidRole          = errors.New("role must be trainer or trainee")
	ErrInviteCodeRequired   = errors.New("invite code is required for trainees")
	ErrInvalidInviteCode    = errors.New("invalid invite code")
	ErrUserNotFound         = errors.New("user not found")
)

// --- Service Interface ---
type AuthService interface {
	// Register creates the account; trainers receive a fresh invite code and
	// trainees are bound to the trainer owning the supplied code.
	Register(ctx context.Context, name, email, password string, role domain.Role, inviteCode string) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// maxInviteCodeAttempts bounds invite-code regeneration when a freshly
// generated code collides with an existing trainer's.
const maxInviteCodeAttempts = 3

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role, inviteCode string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return "", nil, errors.New("name, email, password, and role cannot be empty")
	}
	if role != domain.RoleTrainer && role != domain.RoleTrainee {
		return "", nil, ErrInvalidRole
	}
	email = strings.ToLower(email)

	// Check if the email is already taken.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	user := &domain.User{
		Name:  name,
		Email: email,
		Role:  role,
	}

	switch role {
	case domain.RoleTrainer:
		// Trainers own a unique 6-char registration code.
		code := strings.ToUpper(uuid.NewString()[:6])
		user.InviteCode = &code
	case domain.RoleTrainee:
		if inviteCode == "" {
			return "", nil, ErrInviteCodeRequired
		}
		trainer, err := s.userRepo.GetTrainerByInviteCode(ctx, strings.ToUpper(inviteCode))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", nil, ErrInvalidInviteCode
			}
			return "", nil, err
		}
		user.TrainerID = &trainer.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}
	user.PasswordHash = string(hashedPassword)

	// The repository creates the trainee's zeroed streak row in the same
	// transaction. Two unique indexes can trip the insert: the email (a
	// racing registration) and, for trainers, the invite code. A code
	// collision is retried with a fresh code rather than reported as a
	// duplicate account.
	for attempt := 0; ; attempt++ {
		err := s.userRepo.Create(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return "", nil, err
		}
		if _, lookupErr := s.userRepo.GetByEmail(ctx, email); lookupErr == nil {
			return "", nil, ErrUserAlreadyExists
		}
		if role != domain.RoleTrainer || attempt >= maxInviteCodeAttempts-1 {
			return "", nil, err
		}
		code := strings.ToUpper(uuid.NewString()[:6])
		user.InviteCode = &code
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Login handles user authentication and JWT generation. Unknown email and
// wrong password collapse into the same failure to avoid leaking which it was.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUserByID returns the user behind a verified token (the /me lookup).
func (s *authService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitcoach",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
