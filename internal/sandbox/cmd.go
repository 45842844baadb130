package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync/atomic"
	"time"
)

// waitDelay bounds how long Wait keeps draining pipes that an escaped
// descendant still holds open after the main process exited.
const waitDelay = 250 * time.Millisecond

type Cmd struct {
	argv    []string
	dir     string
	limits  Limits
	started bool
}

// Command prepares argv to run inside dir under limits.
func Command(argv []string, dir string, limits Limits) *Cmd {
	return &Cmd{argv: argv, dir: dir, limits: limits}
}

// Run starts the process, feeds it stdin and waits until it exits, the
// wall limit expires or ctx is cancelled. In the last two cases the whole
// process group is killed. Any group members left after the main process
// exits are killed too, so nothing outlives Run.
func (c *Cmd) Run(ctx context.Context, stdin []byte) (*Result, error) {
	if c.started {
		panic("process should not be started twice")
	}
	c.started = true

	if len(c.argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), c.limits.Env...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.WaitDelay = waitDelay

	stdout := newCappedBuffer(c.limits.StdoutMaxBytes)
	stderr := newCappedBuffer(c.limits.StderrMaxBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.argv[0], err)
	}

	var timedOut, interrupted atomic.Bool
	exited := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		var deadline <-chan time.Time
		if c.limits.WallTime > 0 {
			timer := time.NewTimer(c.limits.WallTime)
			defer timer.Stop()
			deadline = timer.C
		}
		select {
		case <-exited:
		case <-deadline:
			timedOut.Store(true)
			killGroup(cmd.Process)
		case <-ctx.Done():
			interrupted.Store(true)
			killGroup(cmd.Process)
		}
	}()

	waitErr := cmd.Wait()
	wall := time.Since(start)
	close(exited)
	<-watcherDone
	killGroup(cmd.Process)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
			return nil, fmt.Errorf("failed to wait for %s: %w", c.argv[0], waitErr)
		}
	}

	res := &Result{
		ExitCode:        cmd.ProcessState.ExitCode(),
		Signal:          exitSignal(cmd.ProcessState),
		TimedOut:        timedOut.Load(),
		Interrupted:     interrupted.Load(),
		Wall:            wall,
		Cpu:             cmd.ProcessState.UserTime() + cmd.ProcessState.SystemTime(),
		MaxRssKiB:       maxRssKiB(cmd.ProcessState),
		Stdout:          stdout.Bytes(),
		Stderr:          stderr.Bytes(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
	}
	slog.Debug("process finished",
		"cmd", c.argv[0],
		"exit", res.ExitCode,
		"wall", res.Wall,
		"timed_out", res.TimedOut,
		"interrupted", res.Interrupted)
	return res, nil
}
