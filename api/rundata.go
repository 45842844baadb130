package api

// RuntimeData contains execution information for a process
type RuntimeData struct {
	Stdout   string `json:"out,omitempty"`
	Stderr   string `json:"err,omitempty"`
	ExitCode int64  `json:"exit"`

	CpuMillis  int64 `json:"cpu_ms"`
	WallMillis int64 `json:"wall_ms"`
	RamKiBytes int64 `json:"ram_kib"`

	ExitSignal *int64 `json:"signal,omitempty"`
	TimedOut   bool   `json:"timed_out,omitempty"`
}
