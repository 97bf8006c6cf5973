package model

import (
	"time"
)

// UpdateRecord is one immutable entry in the append-only update feed. Rows are
// never mutated or deleted; consumer ordering is created_at, ties broken by id.
type UpdateRecord struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UpdateType string    `gorm:"size:16;not null" json:"update_type"` // created, updated, deleted
	EntityType string    `gorm:"size:16;not null" json:"entity_type"` // job, step, pdf
	EntityID   string    `gorm:"size:36;not null;index" json:"entity_id"`
	Data       string    `gorm:"type:text" json:"-"` // serialized snapshot, decoded on read
	CreatedBy  string    `gorm:"size:64" json:"created_by"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// Update types
const (
	UpdateTypeCreated = "created"
	UpdateTypeUpdated = "updated"
	UpdateTypeDeleted = "deleted"
)

// Entity types
const (
	EntityTypeJob  = "job"
	EntityTypeStep = "step"
	EntityTypePDF  = "pdf"
)
