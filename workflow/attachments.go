package workflow

import (
	"context"
	"fmt"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// AddAttachment records an uploaded document against a job and appends a
// created/pdf feed record. The blob itself is already in object storage.
func (e *Engine) AddAttachment(ctx context.Context, att *model.Attachment) error {
	if _, err := e.getJob(ctx, att.JobID); err != nil {
		return err
	}
	if err := e.store.InsertAttachment(ctx, att); err != nil {
		return fmt.Errorf("%w: insert attachment: %v", ErrStoreUnavailable, err)
	}
	e.appendUpdate(ctx, model.UpdateTypeCreated, model.EntityTypePDF, att.ID, att, att.UploadedBy)
	return nil
}

// ListAttachments returns a job's attachments, newest first
func (e *Engine) ListAttachments(ctx context.Context, jobID string) ([]model.Attachment, error) {
	if _, err := e.getJob(ctx, jobID); err != nil {
		return nil, err
	}
	atts, err := e.store.ListAttachments(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %v", ErrStoreUnavailable, err)
	}
	return atts, nil
}

// GetAttachment returns one attachment or ErrNotFound
func (e *Engine) GetAttachment(ctx context.Context, id string) (*model.Attachment, error) {
	att, err := e.store.GetAttachment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get attachment: %v", ErrStoreUnavailable, err)
	}
	if att == nil {
		return nil, fmt.Errorf("attachment %s: %w", id, ErrNotFound)
	}
	return att, nil
}

// RemoveAttachment deletes the index row and appends a deleted/pdf feed
// record. The caller deletes the blob; a leftover object is harmless.
func (e *Engine) RemoveAttachment(ctx context.Context, id, actor string) (*model.Attachment, error) {
	att, err := e.GetAttachment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.store.DeleteAttachment(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: delete attachment: %v", ErrStoreUnavailable, err)
	}
	e.appendUpdate(ctx, model.UpdateTypeDeleted, model.EntityTypePDF, att.ID, att, actor)
	return att, nil
}
