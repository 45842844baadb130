package testrun

import (
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/sandbox"
)

// Classification is how a single execution ended.
type Classification int

const (
	Completed Classification = iota
	TimedOut
	RuntimeError
	CompileError
)

func (c Classification) String() string {
	switch c {
	case Completed:
		return "Completed"
	case TimedOut:
		return "TimedOut"
	case RuntimeError:
		return "RuntimeError"
	case CompileError:
		return "CompileError"
	}
	return "Unknown"
}

// Verdict maps a non-completed classification to its verdict. Completed
// outcomes need a comparison first and map to Accepted here.
func (c Classification) Verdict() api.Verdict {
	switch c {
	case TimedOut:
		return api.VerdictTimeLimitExceeded
	case RuntimeError:
		return api.VerdictRuntimeError
	case CompileError:
		return api.VerdictCompileError
	}
	return api.VerdictAccepted
}

// Outcome is a classified execution of one test case.
type Outcome struct {
	Class   Classification
	Elapsed time.Duration
	// Output is what the program produced for grading. It is empty for
	// timed out runs.
	Output []byte
	Raw    *sandbox.Result
}

func classify(res *sandbox.Result) Classification {
	switch {
	case res.TimedOut:
		return TimedOut
	case res.Signal != nil || res.ExitCode != 0:
		return RuntimeError
	}
	return Completed
}
