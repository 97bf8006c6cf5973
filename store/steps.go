package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// InsertSteps persists step rows. The owning job row must already exist.
func (s *Store) InsertSteps(ctx context.Context, steps []*model.Step) error {
	if len(steps) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&steps).Error
}

// FindStep returns the step addressed by (jobID, stepNumber), or nil
func (s *Store) FindStep(ctx context.Context, jobID string, stepNumber int) (*model.Step, error) {
	var step model.Step
	err := s.db.WithContext(ctx).
		Where("job_id = ? AND step_number = ?", jobID, stepNumber).
		First(&step).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// FindStepByID returns the step with the given id, or nil
func (s *Store) FindStepByID(ctx context.Context, id string) (*model.Step, error) {
	var step model.Step
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&step).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// ListSteps returns all steps of a job in route order
func (s *Store) ListSteps(ctx context.Context, jobID string) ([]model.Step, error) {
	var steps []model.Step
	err := s.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("step_number ASC").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// UpdateStep writes a step's mutable fields. A map update is used so cleared
// completion fields (empty completed_by, nil completed_at) reach the row.
func (s *Store) UpdateStep(ctx context.Context, step *model.Step) error {
	updates := map[string]interface{}{
		"status":       step.Status,
		"assigned_to":  step.AssignedTo,
		"completed_by": step.CompletedBy,
		"completed_at": step.CompletedAt,
		"updated_at":   time.Now(),
	}
	if len(step.Data) > 0 {
		updates["data"] = step.Data
	}
	return s.db.WithContext(ctx).Model(&model.Step{}).
		Where("id = ?", step.ID).
		Updates(updates).Error
}
