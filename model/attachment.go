package model

import (
	"time"
)

// Attachment is a document stored against a job (traveler PDF, inspection
// sheet, photo). The bytes live in object storage; this row is the index.
type Attachment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	JobID       string    `gorm:"size:36;not null;index" json:"job_id"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	ObjectName  string    `gorm:"size:512;not null" json:"-"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	Size        int64     `json:"size"`
	UploadedBy  string    `gorm:"size:64" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
