//go:build !unix

package sandbox

import (
	"os"
	"syscall"
)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func killGroup(p *os.Process) {
	if p == nil {
		return
	}
	_ = p.Kill()
}

func exitSignal(*os.ProcessState) *int64 {
	return nil
}

func maxRssKiB(*os.ProcessState) int64 {
	return 0
}
