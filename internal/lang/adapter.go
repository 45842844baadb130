// Package lang turns source files into runnable programs.
package lang

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/sandbox"
)

// Adapter prepares and runs submissions of one language.
type Adapter interface {
	Tag() string
	Name() string
	Compiles() bool
	// Prepare is called once per submission. The returned Executable is
	// reused for every test case and must be closed by the caller.
	// A *CompileError means the submission is at fault; any other error
	// is an infrastructure problem.
	Prepare(ctx context.Context, sourcePath string, opts PrepareOptions) (Executable, *api.RuntimeData, error)
	Run(ctx context.Context, exe Executable, req RunRequest) (*sandbox.Result, error)
}

type PrepareOptions struct {
	WorkRoot         string
	CompileTimeLimit time.Duration
}

type RunRequest struct {
	Stdin []byte
	// WorkDir defaults to the executable's own directory.
	WorkDir        string
	TimeLimit      time.Duration
	StdoutMaxBytes int64
	StderrMaxBytes int64
}

// Executable is a prepared submission. It owns a scratch box which Close
// removes together with any compiled artifact.
type Executable interface {
	Argv() []string
	Dir() string
	NewWorkDir(prefix string) (string, error)
	Close() error
}

// CompileError carries the compiler log of a rejected submission.
type CompileError struct {
	Log      string
	TimedOut bool
}

func (e *CompileError) Error() string {
	if e.TimedOut {
		return "compilation timed out"
	}
	first, _, _ := strings.Cut(strings.TrimSpace(e.Log), "\n")
	if first == "" {
		return "compilation failed"
	}
	return "compilation failed: " + first
}

type executable struct {
	box  *sandbox.Box
	argv []string
}

func (e *executable) Argv() []string { return e.argv }

func (e *executable) Dir() string { return e.box.Path() }

func (e *executable) NewWorkDir(prefix string) (string, error) { return e.box.NewDir(prefix) }

func (e *executable) Close() error { return e.box.Close() }

// base holds what interpreted and compiled adapters share.
type base struct {
	spec Spec
}

func (b *base) Tag() string { return b.spec.ID }

func (b *base) Name() string { return b.spec.Name }

func (b *base) Compiles() bool { return b.spec.Compiles() }

func (b *base) commands() []string {
	if b.spec.Compiles() {
		return []string{b.spec.CompileCmd, b.spec.RunCmd}
	}
	return []string{b.spec.RunCmd}
}

func (b *base) Run(ctx context.Context, exe Executable, req RunRequest) (*sandbox.Result, error) {
	dir := req.WorkDir
	if dir == "" {
		dir = exe.Dir()
	}
	limits := sandbox.Limits{
		WallTime:       time.Duration(float64(req.TimeLimit) * b.spec.TimeMultiplier),
		StdoutMaxBytes: req.StdoutMaxBytes,
		StderrMaxBytes: req.StderrMaxBytes,
		Env:            b.spec.Env,
	}
	return sandbox.Command(exe.Argv(), dir, limits).Run(ctx, req.Stdin)
}

func lookPath(lang string, argv []string) error {
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("%w: %s needs %s: %v", ErrToolchainNotFound, lang, argv[0], err)
	}
	return nil
}

// NewAdapter picks the interpreted or compiled variant.
func NewAdapter(spec Spec) (Adapter, error) {
	if err := spec.normalize(); err != nil {
		return nil, err
	}
	if spec.Compiles() {
		return &compiled{base{spec: spec}}, nil
	}
	return &interpreted{base{spec: spec}}, nil
}
