package sqlite

import (
	"context"
	"errors"
	"time"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sqliteUserRepository implements repository.UserRepository using GORM/SQLite.
type sqliteUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of sqliteUserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &sqliteUserRepository{db: db}
}

// Create inserts a new user. Trainees get their zeroed streak satellite row
// in the same transaction, so registration is all-or-nothing.
func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return errors.New("user email, password hash, and role are required")
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return repository.ErrDuplicate
			}
			return err
		}
		if user.IsTrainee() {
			return tx.Create(&domain.Streak{TraineeID: user.ID}).Error
		}
		return nil
	})
}

// GetByEmail retrieves a user by their email address.
func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their id.
func (r *sqliteUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetTrainerByInviteCode resolves an invite code to its owning trainer.
func (r *sqliteUserRepository) GetTrainerByInviteCode(ctx context.Context, code string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("invite_code = ? AND role = ?", code, domain.RoleTrainer).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

const userWithStreakSelect = `users.id, users.email, users.name, users.role, users.trainer_id,
	COALESCE(streaks.current_streak, 0) AS current_streak,
	COALESCE(streaks.longest_streak, 0) AS longest_streak`

// GetTraineesByTrainerID returns the trainer's roster enriched with streak
// fields. Trainees without a streak row report zeros.
func (r *sqliteUserRepository) GetTraineesByTrainerID(ctx context.Context, trainerID string) ([]repository.TraineeWithStreak, error) {
	var rows []repository.TraineeWithStreak
	err := r.db.WithContext(ctx).
		Table("users").
		Select(userWithStreakSelect).
		Joins("LEFT JOIN streaks ON streaks.trainee_id = users.id").
		Where("users.trainer_id = ?", trainerID).
		Order("users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetWithStreak returns a single user enriched with streak fields.
func (r *sqliteUserRepository) GetWithStreak(ctx context.Context, id string) (*repository.TraineeWithStreak, error) {
	var rows []repository.TraineeWithStreak
	err := r.db.WithContext(ctx).
		Table("users").
		Select(userWithStreakSelect).
		Joins("LEFT JOIN streaks ON streaks.trainee_id = users.id").
		Where("users.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}
