package api

import "time"

// JobStatus is the lifecycle state of one evaluation job.
type JobStatus string

const (
	StatusPending   JobStatus = "Pending"
	StatusRunning   JobStatus = "Running"
	StatusCompleted JobStatus = "Completed"
	StatusCancelled JobStatus = "Cancelled"
	StatusFailed    JobStatus = "Failed"
)

// IsTerminal reports whether no further transition can happen.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// TestResult is the judged outcome of a single test case.
type TestResult struct {
	TestID     string       `json:"test_id"`
	Verdict    Verdict      `json:"verdict"`
	Weight     float64      `json:"weight"`
	Submission *RuntimeData `json:"submission,omitempty"`
}

// JobError describes an infrastructure failure. It is never a verdict
// about the submitted program.
type JobError struct {
	Stage   string `json:"stage"`
	TestID  string `json:"test_id,omitempty"`
	Message string `json:"message"`
}

// SubmissionResult is what the result store keeps per (contestant, problem).
type SubmissionResult struct {
	Key      SubmissionKey `json:"key"`
	Language string        `json:"language,omitempty"`
	Status   JobStatus     `json:"status"`
	Verdict  Verdict       `json:"verdict,omitempty"`
	Score    float64       `json:"score"`
	MaxScore float64       `json:"max_score"`

	Compile *RuntimeData `json:"compile,omitempty"`
	Tests   []TestResult `json:"tests,omitempty"`
	Error   *JobError    `json:"error,omitempty"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewPendingResult is the initial store entry of every job.
func NewPendingResult(key SubmissionKey) SubmissionResult {
	return SubmissionResult{Key: key, Status: StatusPending, Verdict: VerdictPending}
}

// Progress is a point in time view of a run.
type Progress struct {
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Running   []SubmissionKey `json:"running,omitempty"`
}

// RunReport is the frozen outcome of a whole evaluation run.
type RunReport struct {
	RunID      string             `json:"run_id"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Cancelled  bool               `json:"cancelled"`
	Results    []SubmissionResult `json:"results"`
}

// RunSummary counts job outcomes of a finished run.
type RunSummary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
	Cancelled int           `json:"cancelled"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// Summarize counts statuses in the report.
func (r RunReport) Summarize() RunSummary {
	sum := RunSummary{RunID: r.RunID, Total: len(r.Results), Elapsed: r.FinishedAt.Sub(r.StartedAt)}
	for _, res := range r.Results {
		switch res.Status {
		case StatusCompleted:
			sum.Completed++
		case StatusCancelled:
			sum.Cancelled++
		case StatusFailed:
			sum.Failed++
		}
	}
	return sum
}
