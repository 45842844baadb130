package lang

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/sandbox"
)

// interpreted runs the source file directly; preparing it only checks
// that the file and the interpreter exist.
type interpreted struct {
	base
}

func (a *interpreted) Prepare(ctx context.Context, sourcePath string, opts PrepareOptions) (Executable, *api.RuntimeData, error) {
	src, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := os.Stat(src); err != nil {
		return nil, nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	box, err := sandbox.NewBox(opts.WorkRoot)
	if err != nil {
		return nil, nil, err
	}
	argv, err := expandCommand(a.spec.RunCmd, templateVars{src: src, bin: src, dir: box.Path()})
	if err == nil {
		err = lookPath(a.spec.ID, argv)
	}
	if err != nil {
		box.Close()
		return nil, nil, err
	}
	return &executable{box: box, argv: argv}, nil, nil
}
