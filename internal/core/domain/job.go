package domain

import (
	"encoding/json"
	"time"
)

// Job is a computation run by the timeout-bounded executor: the name of a registered
// worker function, its argument mapping and the wall-clock budget.
type Job struct {
	Worker  string
	Args    map[string]any
	Timeout time.Duration
}

// OutcomeStatus is the terminal state of a job.
type OutcomeStatus uint8

const (
	// OutcomeSucceeded means the worker delivered a result within its deadline.
	OutcomeSucceeded OutcomeStatus = iota
	// OutcomeTimedOut means the worker was terminated at its deadline.
	OutcomeTimedOut
	// OutcomeFailed means the worker exited without delivering a result.
	OutcomeFailed
)

// String returns the lowercase name of the status.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "failed"
	}
}

// Outcome is produced exactly once per executor invocation.
// Result is only set when Status is OutcomeSucceeded.
type Outcome struct {
	Status   OutcomeStatus
	Result   json.RawMessage
	Duration time.Duration
}

// Decode unmarshals the result into v.
func (o Outcome) Decode(v any) error {
	return json.Unmarshal(o.Result, v)
}
