package model

import (
	"time"
)

// Job represents a manufacturing job moving through a fixed step route
type Job struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	JobNumber    string     `gorm:"uniqueIndex;size:64;not null" json:"job_number"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	ProductType  string     `gorm:"size:64" json:"product_type,omitempty"`
	Status       string     `gorm:"size:32;not null" json:"status"` // draft, in_progress, completed, on_hold
	CurrentStage int        `gorm:"not null" json:"current_stage"`
	TotalStages  int        `gorm:"not null" json:"total_stages"`
	CreatedBy    string     `gorm:"size:64;not null" json:"created_by"`
	AssignedTo   string     `gorm:"size:64" json:"assigned_to,omitempty"`
	HoldReason   string     `gorm:"size:255" json:"hold_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Job status constants
const (
	JobStatusDraft      = "draft"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusOnHold     = "on_hold"
)

// DefaultStepNames is the standard production route assigned at job creation.
// A job with fewer declared stages gets a prefix of this route.
var DefaultStepNames = []string{
	"Material Prep",
	"Fabrication",
	"Assembly",
	"Quality Inspection",
	"Packaging",
}
