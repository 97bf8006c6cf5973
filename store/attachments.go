package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// InsertAttachment persists a new attachment index row
func (s *Store) InsertAttachment(ctx context.Context, att *model.Attachment) error {
	return s.db.WithContext(ctx).Create(att).Error
}

// GetAttachment returns the attachment with the given id, or nil
func (s *Store) GetAttachment(ctx context.Context, id string) (*model.Attachment, error) {
	var att model.Attachment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// ListAttachments returns a job's attachments, newest first
func (s *Store) ListAttachments(ctx context.Context, jobID string) ([]model.Attachment, error) {
	var atts []model.Attachment
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

// DeleteAttachment removes an attachment index row
func (s *Store) DeleteAttachment(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attachment{}).Error
}
