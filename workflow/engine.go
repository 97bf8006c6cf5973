package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
	"github.com/Nizam1989/Nizam-CP-sub001/store"
)

// Notifier pushes an appended feed record to external subscribers. Publish
// failures are logged and swallowed; the feed table is the system of record.
type Notifier interface {
	Notify(ctx context.Context, rec model.UpdateRecord) error
}

// Engine is the job/step progression core: job factory, step update
// processing, aggregate derivation and the update feed.
type Engine struct {
	store              *store.Store
	notifier           Notifier
	allowImplicitSteps bool
}

// NewEngine creates the workflow engine. notifier may be nil.
// allowImplicitSteps enables the legacy path that materializes a step row on
// first update when the factory never created it.
func NewEngine(st *store.Store, allowImplicitSteps bool, notifier Notifier) *Engine {
	return &Engine{
		store:              st,
		notifier:           notifier,
		allowImplicitSteps: allowImplicitSteps,
	}
}

// CreateJobInput is the factory contract
type CreateJobInput struct {
	JobNumber   string         `json:"job_number"`
	Title       string         `json:"title"`
	ProductType string         `json:"product_type"`
	CreatedBy   string         `json:"created_by"`
	AssignedTo  string         `json:"assigned_to"`
	TotalStages int            `json:"total_stages"`
	Data        datatypes.JSON `json:"-"`
}

// CreateJob creates a job in draft together with its default step route:
// min(totalStages, len(DefaultStepNames)) pending steps numbered from 1.
// The job row lands before its steps, and the feed record is appended last so
// a feed reader never sees a half-persisted job.
func (e *Engine) CreateJob(ctx context.Context, in CreateJobInput) (*model.Job, error) {
	if strings.TrimSpace(in.JobNumber) == "" {
		return nil, fmt.Errorf("%w: job_number is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return nil, fmt.Errorf("%w: created_by is required", ErrInvalidInput)
	}
	if in.TotalStages < 1 {
		return nil, fmt.Errorf("%w: total_stages must be at least 1", ErrInvalidInput)
	}

	now := time.Now()
	job := &model.Job{
		ID:           uuid.New().String(),
		JobNumber:    strings.TrimSpace(in.JobNumber),
		Title:        in.Title,
		ProductType:  in.ProductType,
		Status:       model.JobStatusDraft,
		CurrentStage: 1,
		TotalStages:  in.TotalStages,
		CreatedBy:    in.CreatedBy,
		AssignedTo:   in.AssignedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := e.store.InsertJob(ctx, job); err != nil {
		if err == store.ErrDuplicateJobNumber {
			return nil, fmt.Errorf("job number %q: %w", job.JobNumber, store.ErrDuplicateJobNumber)
		}
		return nil, fmt.Errorf("%w: insert job: %v", ErrStoreUnavailable, err)
	}

	count := min(in.TotalStages, len(model.DefaultStepNames))
	steps := make([]*model.Step, 0, count)
	for i := 0; i < count; i++ {
		steps = append(steps, &model.Step{
			ID:         uuid.New().String(),
			JobID:      job.ID,
			StepNumber: i + 1,
			StepName:   model.DefaultStepNames[i],
			Status:     model.StepStatusPending,
			AssignedTo: in.AssignedTo,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err := e.store.InsertSteps(ctx, steps); err != nil {
		return nil, fmt.Errorf("%w: insert steps: %v", ErrStoreUnavailable, err)
	}

	e.appendUpdate(ctx, model.UpdateTypeCreated, model.EntityTypeJob, job.ID, job, in.CreatedBy)
	return job, nil
}

// UpdateStepInput addresses a step either by StepID or by (JobID, StepNumber)
type UpdateStepInput struct {
	JobID       string         `json:"job_id"`
	StepID      string         `json:"step_id"`
	StepNumber  int            `json:"step_number"`
	Status      string         `json:"status"`
	CompletedBy string         `json:"completed_by"`
	AssignedTo  string         `json:"assigned_to"`
	Data        datatypes.JSON `json:"data"`
}

// UpdateStep applies one step status change, recomputes the owning job's
// aggregate from the full step set and writes it through the guarded store
// update, then appends one updated/step feed record.
func (e *Engine) UpdateStep(ctx context.Context, in UpdateStepInput) (*model.Step, error) {
	if !model.ValidStepStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown step status %q", ErrInvalidInput, in.Status)
	}
	if in.Status == model.StepStatusCompleted && strings.TrimSpace(in.CompletedBy) == "" {
		return nil, fmt.Errorf("%w: completed_by is required when completing a step", ErrInvalidInput)
	}

	job, step, err := e.resolveStep(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	step.Status = in.Status
	if in.AssignedTo != "" {
		step.AssignedTo = in.AssignedTo
	}
	if in.Status == model.StepStatusCompleted {
		step.CompletedBy = in.CompletedBy
		step.CompletedAt = &now
	} else {
		step.CompletedBy = ""
		step.CompletedAt = nil
	}
	if len(in.Data) > 0 {
		step.Data = in.Data
	}
	step.UpdatedAt = now

	if err := e.store.UpdateStep(ctx, step); err != nil {
		return nil, fmt.Errorf("%w: update step: %v", ErrStoreUnavailable, err)
	}

	steps, err := e.store.ListSteps(ctx, job.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list steps: %v", ErrStoreUnavailable, err)
	}
	agg := model.DeriveAggregate(steps, job.TotalStages)
	if agg.Status != job.Status || agg.CurrentStage != job.CurrentStage {
		if _, err := e.store.UpdateJobAggregateIfAdvanced(ctx, job.ID, agg); err != nil {
			return nil, fmt.Errorf("%w: update job aggregate: %v", ErrStoreUnavailable, err)
		}
	}

	actor := in.CompletedBy
	if actor == "" {
		actor = in.AssignedTo
	}
	e.appendUpdate(ctx, model.UpdateTypeUpdated, model.EntityTypeStep, step.ID, step, actor)
	return step, nil
}

// resolveStep finds the target step and its owning job. The implicit-create
// path applies only to (jobID, stepNumber) addressing, and never when the job
// itself is missing.
func (e *Engine) resolveStep(ctx context.Context, in UpdateStepInput) (*model.Job, *model.Step, error) {
	if in.StepID != "" {
		step, err := e.store.FindStepByID(ctx, in.StepID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: find step: %v", ErrStoreUnavailable, err)
		}
		if step == nil {
			return nil, nil, fmt.Errorf("step %s: %w", in.StepID, ErrNotFound)
		}
		job, err := e.getJob(ctx, step.JobID)
		if err != nil {
			return nil, nil, err
		}
		return job, step, nil
	}

	if in.JobID == "" || in.StepNumber < 1 {
		return nil, nil, fmt.Errorf("%w: step_id or (job_id, step_number) is required", ErrInvalidInput)
	}
	job, err := e.getJob(ctx, in.JobID)
	if err != nil {
		return nil, nil, err
	}
	step, err := e.store.FindStep(ctx, job.ID, in.StepNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: find step: %v", ErrStoreUnavailable, err)
	}
	if step != nil {
		return job, step, nil
	}
	if !e.allowImplicitSteps {
		return nil, nil, fmt.Errorf("step %d of job %s: %w", in.StepNumber, job.ID, ErrNotFound)
	}

	// Legacy clients update steps the factory never materialized
	now := time.Now()
	step = &model.Step{
		ID:         uuid.New().String(),
		JobID:      job.ID,
		StepNumber: in.StepNumber,
		StepName:   fmt.Sprintf("Step %d", in.StepNumber),
		Status:     model.StepStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.store.InsertSteps(ctx, []*model.Step{step}); err != nil {
		return nil, nil, fmt.Errorf("%w: create step: %v", ErrStoreUnavailable, err)
	}
	return job, step, nil
}

// GetJob returns one job or ErrNotFound
func (e *Engine) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	return e.getJob(ctx, jobID)
}

func (e *Engine) getJob(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: get job: %v", ErrStoreUnavailable, err)
	}
	if job == nil {
		return nil, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	return job, nil
}

// ListJobs returns jobs, newest first
func (e *Engine) ListJobs(ctx context.Context, limit int) ([]model.Job, error) {
	jobs, err := e.store.ListJobs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrStoreUnavailable, err)
	}
	return jobs, nil
}

// ListSteps returns a job's steps in route order
func (e *Engine) ListSteps(ctx context.Context, jobID string) ([]model.Step, error) {
	if _, err := e.getJob(ctx, jobID); err != nil {
		return nil, err
	}
	steps, err := e.store.ListSteps(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list steps: %v", ErrStoreUnavailable, err)
	}
	return steps, nil
}

// HoldJob places a job on manual hold. Hold is the one status not derived
// from step state; the next step update rederives the aggregate and may take
// the job off hold again.
func (e *Engine) HoldJob(ctx context.Context, jobID, reason, actor string) (*model.Job, error) {
	job, err := e.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.SetJobHold(ctx, jobID, reason); err != nil {
		return nil, fmt.Errorf("%w: hold job: %v", ErrStoreUnavailable, err)
	}
	job.Status = model.JobStatusOnHold
	job.HoldReason = reason
	e.appendUpdate(ctx, model.UpdateTypeUpdated, model.EntityTypeJob, job.ID, job, actor)
	return job, nil
}

// ResumeJob takes a job off hold by rederiving its aggregate from step state
func (e *Engine) ResumeJob(ctx context.Context, jobID, actor string) (*model.Job, error) {
	job, err := e.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusOnHold {
		return nil, fmt.Errorf("%w: job %s is not on hold", ErrInvalidInput, jobID)
	}
	steps, err := e.store.ListSteps(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list steps: %v", ErrStoreUnavailable, err)
	}
	agg := model.DeriveAggregate(steps, job.TotalStages)
	if _, err := e.store.UpdateJobAggregateIfAdvanced(ctx, jobID, agg); err != nil {
		return nil, fmt.Errorf("%w: resume job: %v", ErrStoreUnavailable, err)
	}
	job, err = e.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	e.appendUpdate(ctx, model.UpdateTypeUpdated, model.EntityTypeJob, job.ID, job, actor)
	return job, nil
}
