package domain

import "time"

// WorkoutLog is an immutable record that a trainee completed a workout. It
// owns its exercise-log rows; only reported sets get a row (sparse, not
// zero-filled).
type WorkoutLog struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TraineeID   string    `gorm:"column:trainee_id;size:36;not null;index" json:"traineeId"`
	WorkoutID   string    `gorm:"column:workout_id;size:36;not null;index" json:"workoutId"`
	CompletedAt time.Time `gorm:"column:completed_at;index" json:"completedAt"`

	Exercises []ExerciseLog `gorm:"foreignKey:WorkoutLogID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

func (WorkoutLog) TableName() string { return "workout_logs" }

// ExerciseLog is one reported set. SetIndex is the position within the
// submitted sets; it is not validated against the exercise's declared set
// count. The log layer accepts whatever the caller supplies.
type ExerciseLog struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkoutLogID string  `gorm:"column:workout_log_id;size:36;not null;index" json:"workoutLogId"`
	ExerciseID   string  `gorm:"column:exercise_id;size:36;not null" json:"exerciseId"`
	SetIndex     int     `gorm:"column:set_index;not null" json:"setIndex"`
	Reps         int     `gorm:"not null;default:0" json:"reps"`
	Weight       float64 `gorm:"not null;default:0" json:"weight"`
}

func (ExerciseLog) TableName() string { return "exercise_logs" }
