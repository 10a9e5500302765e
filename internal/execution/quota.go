package execution

import (
	"errors"
	"fmt"
)

// quota bounds the number of executor calls in a single run. The visited
// set already stops cycles; the quota stops a run over a very large graph.
type quota struct {
	maxSteps int
	current  int
}

func newQuota(maxSteps int) *quota {
	return &quota{maxSteps: maxSteps}
}

// Check counts one step and fails once the limit is passed.
func (q *quota) Check(runID string) error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{
			RunID: runID,
			Steps: q.current,
			Limit: q.maxSteps,
		}
	}
	return nil
}

// StepsExceededError stops the whole run; nodes executed before it keep
// their results.
type StepsExceededError struct {
	RunID string
	Steps int
	Limit int
}

func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("run %s exceeded max steps quota: %d steps > %d limit", e.RunID, e.Steps, e.Limit)
}

func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
