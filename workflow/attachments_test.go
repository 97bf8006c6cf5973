package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

func TestAttachmentLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := e.CreateJob(ctx, validInput("J-300", 2))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t0 := time.Now().Add(-time.Second)
	att := &model.Attachment{
		ID: uuid.New().String(), JobID: job.ID,
		Filename: "traveler.pdf", ObjectName: job.ID + "/traveler.pdf",
		ContentType: "application/pdf", Size: 2048,
		UploadedBy: "alice", CreatedAt: time.Now(),
	}
	if err := e.AddAttachment(ctx, att); err != nil {
		t.Fatalf("add attachment failed: %v", err)
	}

	atts, err := e.ListAttachments(ctx, job.ID)
	if err != nil {
		t.Fatalf("list attachments failed: %v", err)
	}
	if len(atts) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(atts))
	}

	removed, err := e.RemoveAttachment(ctx, att.ID, "carol")
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed.ObjectName != att.ObjectName {
		t.Errorf("Expected object name %q, got %q", att.ObjectName, removed.ObjectName)
	}

	_, err = e.GetAttachment(ctx, att.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after removal, got %v", err)
	}

	// One created/pdf and one deleted/pdf record
	updates, err := e.ListUpdatesSince(ctx, t0, 0)
	if err != nil {
		t.Fatalf("list updates failed: %v", err)
	}
	var created, deleted int
	for _, u := range updates {
		if u.EntityType != model.EntityTypePDF {
			continue
		}
		switch u.UpdateType {
		case model.UpdateTypeCreated:
			created++
		case model.UpdateTypeDeleted:
			deleted++
		}
	}
	if created != 1 || deleted != 1 {
		t.Errorf("Expected one created/pdf and one deleted/pdf, got %d/%d", created, deleted)
	}
}

func TestAddAttachmentUnknownJob(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.AddAttachment(context.Background(), &model.Attachment{
		ID: uuid.New().String(), JobID: "no-such-job",
		Filename: "x.pdf", ObjectName: "x",
		CreatedAt: time.Now(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
