package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleTrainee Role = "trainee"
)

// User represents a user in the system (either a Trainer or a Trainee).
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // Stored lowercase, unique
	PasswordHash string    `gorm:"column:password;not null" json:"-"` // Never expose this via JSON
	Name         string    `gorm:"not null" json:"name"`
	Role         Role      `gorm:"not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`

	// --- Trainee-specific ---
	// The trainer this trainee is bound to. Set at registration via invite code.
	TrainerID *string `gorm:"column:trainer_id;size:36;index" json:"trainerId,omitempty"`

	// --- Trainer-specific ---
	// Single registration code trainees use to bind themselves to this trainer.
	InviteCode *string `gorm:"column:invite_code;uniqueIndex" json:"inviteCode,omitempty"`
}

// TableName pins the table to the durable schema contract.
func (User) TableName() string { return "users" }

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}
