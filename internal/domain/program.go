package domain

import "time"

// Program is a training program authored by a trainer. It exclusively owns its
// workouts (and transitively their exercises); deleting a program cascades.
type Program struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null;default:''" json:"description"`
	CreatedBy   string    `gorm:"column:created_by;size:36;not null;index" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	Workouts []Workout `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"workouts"`
}

func (Program) TableName() string { return "programs" }

// Workout is a single session within a program, ordered by SortOrder.
type Workout struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ProgramID string `gorm:"column:program_id;size:36;not null;index" json:"programId"`
	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"column:sort_order;default:0" json:"-"`

	Exercises []Exercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
}

func (Workout) TableName() string { return "workouts" }

// Exercise is one prescribed exercise within a workout, with its set/rep/weight
// targets. TargetWeight is REAL in the schema; keep float64 end to end.
type Exercise struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	WorkoutID    string  `gorm:"column:workout_id;size:36;not null;index" json:"-"`
	Name         string  `gorm:"not null" json:"name"`
	Sets         int     `gorm:"not null;default:3" json:"sets"`
	TargetReps   int     `gorm:"column:target_reps;not null;default:10" json:"targetReps"`
	TargetWeight float64 `gorm:"column:target_weight;not null;default:0" json:"targetWeight"`
	SortOrder    int     `gorm:"column:sort_order;default:0" json:"-"`
}

func (Exercise) TableName() string { return "exercises" }
