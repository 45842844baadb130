package sandbox

import (
	"time"

	"github.com/programme-lv/batchjudge/api"
)

// Result is the raw outcome of one process execution.
type Result struct {
	ExitCode int
	// Signal is set when the process was terminated by a signal.
	Signal *int64

	TimedOut    bool
	Interrupted bool

	Wall      time.Duration
	Cpu       time.Duration
	MaxRssKiB int64

	Stdout          []byte
	Stderr          []byte
	StdoutTruncated bool
	StderrTruncated bool
}

// Success reports a clean zero exit within limits.
func (r *Result) Success() bool {
	return !r.TimedOut && !r.Interrupted && r.Signal == nil && r.ExitCode == 0
}

// RuntimeData converts the result to its reportable form with output
// trimmed to the given rectangle.
func (r *Result) RuntimeData(maxHeight, maxWidth int) *api.RuntimeData {
	if r == nil {
		return nil
	}
	return &api.RuntimeData{
		Stdout:     api.TrimToRect(string(r.Stdout), maxHeight, maxWidth),
		Stderr:     api.TrimToRect(string(r.Stderr), maxHeight, maxWidth),
		ExitCode:   int64(r.ExitCode),
		CpuMillis:  r.Cpu.Milliseconds(),
		WallMillis: r.Wall.Milliseconds(),
		RamKiBytes: r.MaxRssKiB,
		ExitSignal: r.Signal,
		TimedOut:   r.TimedOut,
	}
}
