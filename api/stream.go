package api

import "time"

// MsgType is a message type for streaming progress
type MsgType string

// Streaming message type constants
const (
	StartJobMsg      MsgType = "job_start"
	StartCompileMsg  MsgType = "compile_start"
	FinishCompileMsg MsgType = "compile_finish"
	ReachTestMsg     MsgType = "test_reach"
	IgnoreTestMsg    MsgType = "test_ignore"
	FinishTestMsg    MsgType = "test_finish"
	FinishJobMsg     MsgType = "job_finish"
	FinishRunMsg     MsgType = "run_finish"
)

// Runtime data size constraints for streaming
const (
	MaxRuntimeDataHeight = 40
	MaxRuntimeDataWidth  = 80
)

// Header is the common header for all streaming messages
type Header struct {
	RunID      string  `json:"run_id"`
	Contestant string  `json:"contestant,omitempty"`
	Problem    string  `json:"problem,omitempty"`
	MsgType    MsgType `json:"msg_type"`
}

// StartJob message sent when a worker picks up a job
type StartJob struct {
	Header
	Language    string `json:"language"`
	TestCount   int    `json:"test_count"`
	StartedTime string `json:"started_time"`
}

// StartCompile message sent when compilation begins
type StartCompile struct {
	Header
}

// FinishCompile message sent when compilation completes
type FinishCompile struct {
	Header
	RuntimeData *RuntimeData `json:"runtime_data"`
}

// ReachTest message sent when a test is reached
type ReachTest struct {
	Header
	TestID string `json:"test_id"`
	Index  int    `json:"index"`
}

// IgnoreTest message sent when a test is skipped
type IgnoreTest struct {
	Header
	TestID string `json:"test_id"`
}

// FinishTest message sent when a test is judged
type FinishTest struct {
	Header
	Result TestResult `json:"result"`
}

// FinishJob message sent when a job reaches a terminal status
type FinishJob struct {
	Header
	Status   JobStatus    `json:"status"`
	Verdict  Verdict      `json:"verdict,omitempty"`
	Score    float64      `json:"score"`
	MaxScore float64      `json:"max_score"`
	Tests    []TestResult `json:"tests,omitempty"`
	Error    *JobError    `json:"error,omitempty"`
}

// FinishRun message sent once the whole run is done
type FinishRun struct {
	Header
	Summary RunSummary `json:"summary"`
}

// Type lets every message that embeds Header report its type.
func (h Header) Type() MsgType {
	return h.MsgType
}

// Key is empty for run level messages.
func (h Header) Key() SubmissionKey {
	return SubmissionKey{Contestant: h.Contestant, Problem: h.Problem}
}

func NewHeader(runID string, key SubmissionKey, msgType MsgType) Header {
	return Header{
		RunID:      runID,
		Contestant: key.Contestant,
		Problem:    key.Problem,
		MsgType:    msgType,
	}
}

func NewStartJob(runID string, key SubmissionKey, language string, testCount int) StartJob {
	return StartJob{
		Header:      NewHeader(runID, key, StartJobMsg),
		Language:    language,
		TestCount:   testCount,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewStartCompile(runID string, key SubmissionKey) StartCompile {
	return StartCompile{Header: NewHeader(runID, key, StartCompileMsg)}
}

func NewFinishCompile(runID string, key SubmissionKey, data *RuntimeData) FinishCompile {
	return FinishCompile{
		Header:      NewHeader(runID, key, FinishCompileMsg),
		RuntimeData: data,
	}
}

func NewReachTest(runID string, key SubmissionKey, testID string, index int) ReachTest {
	return ReachTest{
		Header: NewHeader(runID, key, ReachTestMsg),
		TestID: testID,
		Index:  index,
	}
}

func NewIgnoreTest(runID string, key SubmissionKey, testID string) IgnoreTest {
	return IgnoreTest{
		Header: NewHeader(runID, key, IgnoreTestMsg),
		TestID: testID,
	}
}

func NewFinishTest(runID string, key SubmissionKey, res TestResult) FinishTest {
	return FinishTest{
		Header: NewHeader(runID, key, FinishTestMsg),
		Result: res,
	}
}

func NewFinishJob(runID string, res SubmissionResult) FinishJob {
	return FinishJob{
		Header:   NewHeader(runID, res.Key, FinishJobMsg),
		Status:   res.Status,
		Verdict:  res.Verdict,
		Score:    res.Score,
		MaxScore: res.MaxScore,
		Tests:    res.Tests,
		Error:    res.Error,
	}
}

func NewFinishRun(summary RunSummary) FinishRun {
	return FinishRun{
		Header:  Header{RunID: summary.RunID, MsgType: FinishRunMsg},
		Summary: summary,
	}
}
