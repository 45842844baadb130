// Package testrun executes one prepared submission against one test case.
package testrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/lang"
)

type Request struct {
	TimeLimit      time.Duration
	IO             api.IOConfig
	StdoutMaxBytes int64
	StderrMaxBytes int64
}

// Runner is stateless; one value can serve all workers.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Run feeds the test input to exe, waits for it under the time limit and
// classifies the result. An error means the test could not be executed
// at all, or ctx was cancelled.
func (r *Runner) Run(ctx context.Context, adapter lang.Adapter, exe lang.Executable, tc api.TestCase, req Request) (Outcome, error) {
	if req.TimeLimit <= 0 {
		return Outcome{}, fmt.Errorf("time limit must be positive, got %s", req.TimeLimit)
	}
	input, err := tc.ReadInput()
	if err != nil {
		return Outcome{}, err
	}

	dir, err := exe.NewWorkDir("test")
	if err != nil {
		return Outcome{}, err
	}
	defer os.RemoveAll(dir)

	fileIn := req.IO.Mode == api.IOFile && req.IO.InputFile != ""
	fileOut := req.IO.Mode == api.IOFile && req.IO.OutputFile != ""
	stdin := input
	if fileIn {
		if err := os.WriteFile(filepath.Join(dir, req.IO.InputFile), input, 0o644); err != nil {
			return Outcome{}, fmt.Errorf("failed to write input file: %w", err)
		}
		stdin = nil
	}

	res, err := adapter.Run(ctx, exe, lang.RunRequest{
		Stdin:          stdin,
		WorkDir:        dir,
		TimeLimit:      req.TimeLimit,
		StdoutMaxBytes: req.StdoutMaxBytes,
		StderrMaxBytes: req.StderrMaxBytes,
	})
	if err != nil {
		return Outcome{}, err
	}
	if res.Interrupted {
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, context.Canceled
	}

	out := Outcome{Class: classify(res), Elapsed: res.Wall, Raw: res}
	switch {
	case out.Class == TimedOut:
	case fileOut:
		out.Output, err = os.ReadFile(filepath.Join(dir, req.IO.OutputFile))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Outcome{}, fmt.Errorf("failed to read output file: %w", err)
		}
		// an absent or blank output file falls back to stdout
		if len(bytes.TrimSpace(out.Output)) == 0 {
			out.Output = res.Stdout
		}
	default:
		out.Output = res.Stdout
	}
	return out, nil
}
