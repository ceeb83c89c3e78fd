package domain

import "time"

// GanttTask is one row of a project's schedule tree. ParentID is a
// self reference: a task that appears as somebody's parent is never
// worked directly; its actual dates and progress are derived from its
// descendants by the rollup in the schedule service.
type GanttTask struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	ProjectID    int64      `gorm:"index;not null" json:"project_id"`
	TaskName     string     `gorm:"not null" json:"task_name"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
	ActualStart  *time.Time `json:"actual_start,omitempty"`
	ActualEnd    *time.Time `json:"actual_end,omitempty"`
	Progress     int        `gorm:"default:0" json:"progress"`
	Duration     int        `json:"duration"`
	Predecessor  string     `json:"predecessor,omitempty"`
	ParentID     *int64     `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (GanttTask) TableName() string { return "gantt_tasks" }

// TaskProof is one reported checkpoint for a leaf task: a start report
// or a finish report with a photo. A task accumulates many.
type TaskProof struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	TaskID         int64      `gorm:"index;not null" json:"task_id"`
	ProofImage     string     `json:"proof_image"`
	IsFinish       bool       `gorm:"default:false" json:"is_finish"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	EstimatedStart *time.Time `json:"estimated_start,omitempty"`
	TaskProgress   int        `gorm:"default:0" json:"task_progress"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (TaskProof) TableName() string { return "task_proofs" }
