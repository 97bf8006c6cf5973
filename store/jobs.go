package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// InsertJob persists a new job row. A unique-index violation on job_number is
// translated to ErrDuplicateJobNumber.
func (s *Store) InsertJob(ctx context.Context, job *model.Job) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateJobNumber
		}
		return err
	}
	return nil
}

// GetJob returns the job with the given id, or nil if it does not exist
func (s *Store) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns jobs ordered newest first
func (s *Store) ListJobs(ctx context.Context, limit int) ([]model.Job, error) {
	var jobs []model.Job
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateJobAggregateIfAdvanced writes the derived status and stage pointer,
// guarded so a late out-of-order update cannot move the stage backward. The
// condition admits equal stages because a status-only change (first completion
// of a non-leading step) must still land. Returns whether the row was written.
func (s *Store) UpdateJobAggregateIfAdvanced(ctx context.Context, jobID string, agg model.Aggregate) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":        agg.Status,
		"current_stage": agg.CurrentStage,
		"hold_reason":   "",
		"updated_at":    now,
	}
	if agg.Status == model.JobStatusDraft {
		updates["started_at"] = nil
	} else {
		updates["started_at"] = gorm.Expr("COALESCE(started_at, ?)", now)
	}
	if agg.Status == model.JobStatusCompleted {
		updates["completed_at"] = now
	} else {
		updates["completed_at"] = nil
	}

	res := s.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ? AND current_stage <= ?", jobID, agg.CurrentStage).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetJobHold places a job on manual hold. Returns whether the job existed.
func (s *Store) SetJobHold(ctx context.Context, jobID, reason string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":      model.JobStatusOnHold,
			"hold_reason": reason,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
