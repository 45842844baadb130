//go:build unix

package sandbox

import (
	"os"
	"runtime"
	"syscall"
)

// killGroup sends SIGKILL to the process group led by p.
func killGroup(p *os.Process) {
	if p == nil {
		return
	}
	_ = syscall.Kill(-p.Pid, syscall.SIGKILL)
}

func exitSignal(state *os.ProcessState) *int64 {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return nil
	}
	sig := int64(ws.Signal())
	return &sig
}

func maxRssKiB(state *os.ProcessState) int64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok {
		return 0
	}
	if runtime.GOOS == "darwin" {
		return int64(ru.Maxrss) / 1024
	}
	return int64(ru.Maxrss)
}
