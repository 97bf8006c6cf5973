package model

// Aggregate is the derived job-level view of a step set
type Aggregate struct {
	Status       string
	CurrentStage int
}

// DeriveAggregate computes a job's status and current-stage pointer from its
// full step set. Pure: no store access, no mutation of steps.
//
// The stage pointer is the lowest step number in 1..totalStages that is not
// completed; totalStages+1 once everything is done. A step number without a
// row counts as not completed, so a job whose declared route is longer than
// its materialized steps cannot read as completed.
func DeriveAggregate(steps []Step, totalStages int) Aggregate {
	if totalStages < 1 {
		totalStages = 1
	}

	byNumber := make(map[int]string, len(steps))
	touched := false
	for _, s := range steps {
		byNumber[s.StepNumber] = s.Status
		if s.Status == StepStatusCompleted || s.Status == StepStatusInProgress {
			touched = true
		}
	}

	currentStage := totalStages + 1
	allCompleted := true
	for n := 1; n <= totalStages; n++ {
		if byNumber[n] != StepStatusCompleted {
			allCompleted = false
			currentStage = n
			break
		}
	}

	switch {
	case allCompleted:
		return Aggregate{Status: JobStatusCompleted, CurrentStage: totalStages + 1}
	case touched:
		return Aggregate{Status: JobStatusInProgress, CurrentStage: currentStage}
	default:
		return Aggregate{Status: JobStatusDraft, CurrentStage: currentStage}
	}
}
