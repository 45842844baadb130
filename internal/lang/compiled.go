package lang

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/sandbox"
)

const compileOutputMaxBytes = 64 << 10

// compiled builds an artifact once per submission. JVM languages are
// compiled languages whose artifact is a class directory.
type compiled struct {
	base
}

func (a *compiled) Prepare(ctx context.Context, sourcePath string, opts PrepareOptions) (_ Executable, _ *api.RuntimeData, err error) {
	code, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source: %w", err)
	}

	box, err := sandbox.NewBox(opts.WorkRoot)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			if cerr := box.Close(); cerr != nil {
				slog.Warn("failed to close box", "path", box.Path(), "err", cerr)
			}
		}
	}()

	if err = box.AddFile(a.spec.SourceFile, code); err != nil {
		return nil, nil, fmt.Errorf("failed to add source to box: %w", err)
	}

	vars := templateVars{
		src: filepath.Join(box.Path(), a.spec.SourceFile),
		bin: filepath.Join(box.Path(), a.spec.BinaryFile),
		dir: box.Path(),
	}
	compileArgv, err := expandCommand(a.spec.CompileCmd, vars)
	if err != nil {
		return nil, nil, err
	}
	runArgv, err := expandCommand(a.spec.RunCmd, vars)
	if err != nil {
		return nil, nil, err
	}
	if err = lookPath(a.spec.ID, compileArgv); err != nil {
		return nil, nil, err
	}

	limits := sandbox.Limits{
		WallTime:       opts.CompileTimeLimit,
		StdoutMaxBytes: compileOutputMaxBytes,
		StderrMaxBytes: compileOutputMaxBytes,
		Env:            a.spec.Env,
	}
	res, err := sandbox.Command(compileArgv, box.Path(), limits).Run(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run compiler: %w", err)
	}
	if res.Interrupted {
		err = ctx.Err()
		return nil, nil, err
	}

	data := res.RuntimeData(api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	if !res.Success() || !box.HasFile(a.spec.BinaryFile) {
		err = &CompileError{
			Log:      string(res.Stderr) + string(res.Stdout),
			TimedOut: res.TimedOut,
		}
		return nil, data, err
	}
	return &executable{box: box, argv: runArgv}, data, nil
}
