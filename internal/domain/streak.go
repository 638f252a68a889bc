package domain

// Streak is a 1:1 satellite of a trainee, created with zeros at registration
// and mutated only by the progress engine's completion transition.
// Invariant: LongestStreak >= CurrentStreak.
type Streak struct {
	TraineeID     string `gorm:"column:trainee_id;primaryKey;size:36" json:"traineeId"`
	CurrentStreak int    `gorm:"column:current_streak;not null;default:0" json:"currentStreak"`
	LongestStreak int    `gorm:"column:longest_streak;not null;default:0" json:"longestStreak"`
}

func (Streak) TableName() string { return "streaks" }
