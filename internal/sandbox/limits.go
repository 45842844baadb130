package sandbox

import "time"

// Limits bound a single process execution.
type Limits struct {
	// WallTime is measured on the monotonic clock. Zero disables the limit.
	WallTime time.Duration
	// Captured output beyond these sizes is dropped. Zero or less keeps all.
	StdoutMaxBytes int64
	StderrMaxBytes int64
	// Env is appended to the inherited environment.
	Env []string
}

const (
	DefaultStdoutMaxBytes = 64 << 20
	DefaultStderrMaxBytes = 64 << 10
)

func DefaultLimits() Limits {
	return Limits{
		WallTime:       10 * time.Second,
		StdoutMaxBytes: DefaultStdoutMaxBytes,
		StderrMaxBytes: DefaultStderrMaxBytes,
	}
}
