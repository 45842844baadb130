package evaluator

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/fileio"
)

// resolveIO settles IOAuto for one submission. Sources that cannot be
// scanned use stdio.
func resolveIO(sub api.Submission, problemID string, io api.IOConfig, log *slog.Logger) (api.IOConfig, error) {
	if io.Mode != api.IOAuto {
		return io, nil
	}
	if !fileio.Detectable(sub.SourcePath) {
		return api.IOConfig{Mode: api.IOStdio}, nil
	}
	src, err := os.ReadFile(sub.SourcePath)
	if err != nil {
		return io, fmt.Errorf("failed to read source for io detection: %w", err)
	}
	d := fileio.Detect(src, problemID)
	log.Debug("detected file io", "input", d.Input, "output", d.Output, "name_macro", d.NameMacro)
	return d.IOConfig(), nil
}
