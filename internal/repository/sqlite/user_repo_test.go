package sqlite

import (
	"context"
	"strings"
	"testing"

	"fitcoach/server/internal/domain"
	"fitcoach/server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_TraineeGetsStreakRow(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	trainee := createTrainee(t, db, trainer.ID)

	streak := loadStreak(t, db, trainee.ID)
	assert.Zero(t, streak.CurrentStreak)
	assert.Zero(t, streak.LongestStreak)

	// Trainers carry no streak row.
	var count int64
	require.NoError(t, db.Model(&domain.Streak{}).Where("trainee_id = ?", trainer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)

	dup := &domain.User{
		Name:         "Other",
		Email:        trainer.Email,
		PasswordHash: "x",
		Role:         domain.RoleTrainer,
	}
	err := NewUserRepository(db).Create(context.Background(), dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestGetTrainerByInviteCode(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	repo := NewUserRepository(db)

	found, err := repo.GetTrainerByInviteCode(context.Background(), *trainer.InviteCode)
	require.NoError(t, err)
	assert.Equal(t, trainer.ID, found.ID)

	_, err = repo.GetTrainerByInviteCode(context.Background(), "NOPE99")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetTraineesByTrainerID_RosterWithStreaks(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	other := createTrainer(t, db)
	a := createTrainee(t, db, trainer.ID)
	b := createTrainee(t, db, trainer.ID)
	createTrainee(t, db, other.ID)

	require.NoError(t, db.Model(&domain.Streak{}).Where("trainee_id = ?", a.ID).
		Update("current_streak", 4).Error)

	rows, err := NewUserRepository(db).GetTraineesByTrainerID(context.Background(), trainer.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Roster is ordered by name.
	assert.True(t, strings.Compare(rows[0].Name, rows[1].Name) <= 0)
	byID := map[string]repository.TraineeWithStreak{}
	for _, row := range rows {
		byID[row.ID] = row
	}
	assert.Equal(t, 4, byID[a.ID].CurrentStreak)
	assert.Equal(t, 0, byID[b.ID].CurrentStreak)
}

func TestGetWithStreak(t *testing.T) {
	db := newTestDB(t)
	trainer := createTrainer(t, db)
	trainee := createTrainee(t, db, trainer.ID)

	row, err := NewUserRepository(db).GetWithStreak(context.Background(), trainee.ID)
	require.NoError(t, err)
	assert.Equal(t, trainee.Email, row.Email)
	assert.Zero(t, row.CurrentStreak)

	_, err = NewUserRepository(db).GetWithStreak(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
