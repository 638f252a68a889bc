package domain

import "time"

// TraineeAssignment binds a trainee to their single active program. The
// trainee id is the primary key, so re-assignment is an upsert (last write
// wins) and no assignment history is retained.
type TraineeAssignment struct {
	TraineeID  string    `gorm:"column:trainee_id;primaryKey;size:36" json:"traineeId"`
	ProgramID  string    `gorm:"column:program_id;size:36;not null" json:"programId"`
	AssignedAt time.Time `gorm:"column:assigned_at" json:"assignedAt"`
}

func (TraineeAssignment) TableName() string { return "trainee_assignments" }
