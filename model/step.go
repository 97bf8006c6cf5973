package model

import (
	"time"

	"gorm.io/datatypes"
)

// Step represents one production step owned by a job. StepNumber is 1-based
// and unique within the owning job.
type Step struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	JobID       string         `gorm:"size:36;not null;uniqueIndex:idx_steps_job_step,priority:1" json:"job_id"`
	StepNumber  int            `gorm:"not null;uniqueIndex:idx_steps_job_step,priority:2" json:"step_number"`
	StepName    string         `gorm:"size:255;not null" json:"step_name"`
	Description string         `gorm:"size:1024" json:"description,omitempty"`
	Status      string         `gorm:"size:32;not null" json:"status"` // pending, in_progress, completed
	AssignedTo  string         `gorm:"size:64" json:"assigned_to,omitempty"`
	CompletedBy string         `gorm:"size:64" json:"completed_by,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Data        datatypes.JSON `json:"data,omitempty"` // opaque payload, e.g. inspection form fields
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Step status constants
const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
)

// ValidStepStatus reports whether s is a recognized step status
func ValidStepStatus(s string) bool {
	switch s {
	case StepStatusPending, StepStatusInProgress, StepStatusCompleted:
		return true
	}
	return false
}
