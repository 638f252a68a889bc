package domain

import "time"

// TaskType for task cadence. Only weekly exists today.
type TaskType string

const TaskTypeWeekly TaskType = "weekly"

// Task is a trainer-authored goal (e.g. "Workout 3x") with a completion
// threshold. Assignments are pushed to trainees at creation time only.
type Task struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	TargetCount int       `gorm:"column:target_count;not null;default:3" json:"targetCount"`
	Type        TaskType  `gorm:"not null;default:weekly" json:"type"`
	CreatedBy   string    `gorm:"column:created_by;size:36;not null;index" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`

	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Task) TableName() string { return "tasks" }

// TaskAssignment tracks one trainee's progress against a task. Completed is
// persisted alongside progress; the progress engine is the only writer and
// always derives it from the fresh progress value.
type TaskAssignment struct {
	TaskID    string `gorm:"column:task_id;primaryKey;size:36" json:"taskId"`
	TraineeID string `gorm:"column:trainee_id;primaryKey;size:36" json:"traineeId"`
	Progress  int    `gorm:"not null;default:0" json:"progress"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
}

func (TaskAssignment) TableName() string { return "task_assignments" }
