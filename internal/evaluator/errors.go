package evaluator

import (
	"errors"
	"fmt"

	"github.com/programme-lv/batchjudge/api"
)

// ErrInterrupted is returned when evaluation is cancelled part way.
var ErrInterrupted = errors.New("evaluation interrupted")

// Stage names where an infrastructure failure happened.
const (
	StagePrepare = "prepare"
	StageTest    = "test"
	StageSetup   = "setup"
)

// InfraError means the judge itself could not evaluate the submission:
// a missing toolchain, an unreadable test file, a failing disk. It is
// never blamed on the contestant.
type InfraError struct {
	Key    api.SubmissionKey
	Stage  string
	TestID string
	Err    error
}

func (e *InfraError) Error() string {
	if e.TestID != "" {
		return fmt.Sprintf("%s: %s failed on test %s: %v", e.Key, e.Stage, e.TestID, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Key, e.Stage, e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}

// JobError converts e into its reportable form.
func (e *InfraError) JobError() *api.JobError {
	return &api.JobError{Stage: e.Stage, TestID: e.TestID, Message: e.Err.Error()}
}
